package joshbridge

import (
	"github.com/tidwall/gjson"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshconvert"
	"github.com/joshsim/joshc/internal/joshentity"
	"github.com/joshsim/joshc/internal/joshvalue"
)

func unknownPrototype(entityTypeName string) error {
	return josherrors.State("get_prototype", "no prototype registered for entity type %q", entityTypeName)
}

func unknownExternal(geoKey, name string) error {
	return josherrors.State("get_external", "no external value %q for geo key %q", name, geoKey)
}

// memGeometry is the trivial Geometry a memBridge's factory builds: a named
// point, enough for prior-patch lookup by geo key in tests.
type memGeometry struct {
	geoKey string
}

func (g memGeometry) GeometryKind() string { return "point" }

type memGeometryFactory struct{}

func (memGeometryFactory) Build(args ...*joshvalue.EngineValue) (Geometry, error) {
	if len(args) == 0 {
		return memGeometry{}, nil
	}
	key, err := args[0].AsString()
	if err != nil {
		return nil, err
	}
	return memGeometry{geoKey: key}, nil
}

// memBridge is a Bridge test double backed by an in-memory external-data
// fixture loaded from a JSON blob via gjson (spec's external-data rows are
// arbitrary JSON objects keyed by geo key then attribute name), plus
// in-memory prototype and prior-patch tables a test populates directly.
type memBridge struct {
	factory    *joshvalue.Factory
	converter  *joshconvert.Converter
	prototypes map[string]*joshentity.EntityPrototype
	priors     map[string][]*joshentity.Entity
	external   map[string]map[string]gjson.Result
	config     map[string]*joshvalue.EngineValue
	absStep    int64
	curStep    int64
}

// newMemBridge builds a memBridge whose external-data table is parsed from
// externalJSON, a JSON object of the shape `{"geoKey": {"attr": value}}`.
func newMemBridge(factory *joshvalue.Factory, converter *joshconvert.Converter, externalJSON string) *memBridge {
	external := make(map[string]map[string]gjson.Result)
	if externalJSON != "" {
		gjson.Parse(externalJSON).ForEach(func(geoKey, row gjson.Result) bool {
			attrs := make(map[string]gjson.Result)
			row.ForEach(func(attr, v gjson.Result) bool {
				attrs[attr.String()] = v
				return true
			})
			external[geoKey.String()] = attrs
			return true
		})
	}
	return &memBridge{
		factory:    factory,
		converter:  converter,
		prototypes: make(map[string]*joshentity.EntityPrototype),
		priors:     make(map[string][]*joshentity.Entity),
		external:   external,
		config:     make(map[string]*joshvalue.EngineValue),
	}
}

func (b *memBridge) registerPrototype(typeName string, proto *joshentity.EntityPrototype) {
	b.prototypes[typeName] = proto
}

func (b *memBridge) registerPriorPatches(geoKey string, patches []*joshentity.Entity) {
	b.priors[geoKey] = patches
}

func (b *memBridge) setConfig(name string, value *joshvalue.EngineValue) {
	b.config[name] = value
}

func (b *memBridge) Convert(value *joshvalue.EngineValue, targetUnits joshvalue.Units) (*joshvalue.EngineValue, error) {
	return b.converter.Convert(b.factory, value, targetUnits)
}

func (b *memBridge) GetPrototype(entityTypeName string) (*joshentity.EntityPrototype, error) {
	proto, ok := b.prototypes[entityTypeName]
	if !ok {
		return nil, unknownPrototype(entityTypeName)
	}
	return proto, nil
}

func (b *memBridge) GeometryFactory() GeometryFactory {
	return memGeometryFactory{}
}

func (b *memBridge) GetPriorPatches(geometry Geometry) ([]*joshentity.Entity, error) {
	g, ok := geometry.(memGeometry)
	if !ok {
		return nil, nil
	}
	return b.priors[g.geoKey], nil
}

func (b *memBridge) GetExternal(geoKey, name string, step int64) (*joshvalue.EngineValue, error) {
	row, ok := b.external[geoKey]
	if !ok {
		return nil, unknownExternal(geoKey, name)
	}
	result, ok := row[name]
	if !ok {
		return nil, unknownExternal(geoKey, name)
	}
	return b.factory.BuildString(result.String()), nil
}

func (b *memBridge) GetConfigOptional(name string) (*joshvalue.EngineValue, bool) {
	v, ok := b.config[name]
	return v, ok
}

func (b *memBridge) GetAbsoluteTimestep() int64 { return b.absStep }
func (b *memBridge) GetCurrentTimestep() int64  { return b.curStep }

func (b *memBridge) EngineValueFactory() *joshvalue.Factory { return b.factory }
func (b *memBridge) Converter() *joshconvert.Converter      { return b.converter }

var _ Bridge = (*memBridge)(nil)
