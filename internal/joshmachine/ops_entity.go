package joshmachine

import (
	"fmt"
	"sync/atomic"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshff"
	"github.com/joshsim/joshc/internal/joshscope"
	"github.com/joshsim/joshc/internal/joshvalue"
)

var entitySeq int64

func nextEntityName(typeName string) string {
	return fmt.Sprintf("%s-%d", typeName, atomic.AddInt64(&entitySeq, 1))
}

// attributeHandle is the shape a joshvalue.EntityHandle must additionally
// satisfy to be wrapped in an EntityScope — identical to joshscope's
// unexported attributeSource, redeclared here for the same reason joshscope
// redeclares joshentity.Scope: no import-cycle dependency on joshentity's
// concrete Entity is required, only on this method shape.
type attributeHandle interface {
	Get(name string) (*joshvalue.EngineValue, error)
	Has(name string) bool
	Attributes() []string
}

// CreateEntity pops count (normalized to count units, no conversion group)
// and pushes either a single entity or a realized distribution of entities
// built from the prototype registered for typeName, each fast-forwarded to
// the current owning entity's substep (spec §4.6, §4.7, §8 scenario 4).
func (m *Machine) CreateEntity(typeName string) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	rawCount, err := m.pop()
	if err != nil {
		return err
	}
	countValue, err := m.convertSingle(rawCount, joshvalue.Count)
	if err != nil {
		return err
	}
	n, err := countValue.AsInt()
	if err != nil {
		return err
	}
	if n < 0 {
		return josherrors.Domain("create_entity", "negative entity count %d", n)
	}
	if m.currentEntity == nil {
		return josherrors.State("create_entity", "no owning entity in this machine invocation")
	}
	substep := m.currentEntity.CurrentSubstep()
	if substep == "" || !m.currentEntity.SubstepOpen() {
		return josherrors.State("create_entity", "owning entity has no open substep to fast-forward new entities to")
	}

	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	proto, err := bridge.GetPrototype(typeName)
	if err != nil {
		return err
	}
	converter := bridge.Converter()

	values := make([]*joshvalue.EngineValue, 0, n)
	for i := int64(0); i < n; i++ {
		entity := proto.Build(nextEntityName(typeName))
		if proto.EmbedsParent() {
			entity.Parent = m.currentEntity
		}
		if err := joshff.FastForward(entity, converter, substep); err != nil {
			return err
		}
		values = append(values, f.BuildEntity(entity))
	}

	if n == 1 {
		m.Push(values[0])
		return nil
	}
	m.Push(f.BuildRealizedDistribution(values, joshvalue.Units(typeName)))
	return nil
}

// PushAttribute pops subject (an entity, no conversion group) and pushes the
// value path resolves to against an EntityScope over it (spec §4.6).
func (m *Machine) PushAttribute(path string) error {
	subject, err := m.pop()
	if err != nil {
		return err
	}
	handle, err := subject.AsEntity()
	if err != nil {
		return err
	}
	inner, ok := handle.(attributeHandle)
	if !ok {
		return josherrors.Resolution(path, nil)
	}
	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	scope := joshscope.NewEntityScope(inner, bridge.Converter())
	resolver := joshscope.NewValueResolver(scope)
	value, err := resolver.Get(path)
	if err != nil {
		return err
	}
	m.Push(value)
	return nil
}

// ExecuteSpatialQuery pops distance (normalized to meters, no conversion
// group) and pushes a realized distribution built by resolving path against
// every patch the bridge reports within distance of the owning entity (spec
// §4.6).
func (m *Machine) ExecuteSpatialQuery(path string) error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	rawDistance, err := m.pop()
	if err != nil {
		return err
	}
	distance, err := m.convertSingle(rawDistance, "meters")
	if err != nil {
		return err
	}

	bridge, err := m.bridgeOrErr()
	if err != nil {
		return err
	}
	args := []*joshvalue.EngineValue{distance}
	if m.currentEntity != nil && m.currentEntity.GeoKey != nil {
		args = append(args, f.BuildString(*m.currentEntity.GeoKey))
	}
	geometry, err := bridge.GeometryFactory().Build(args...)
	if err != nil {
		return err
	}
	patches, err := bridge.GetPriorPatches(geometry)
	if err != nil {
		return err
	}

	results := make([]*joshvalue.EngineValue, 0, len(patches))
	units := joshvalue.Dimensionless
	for _, patch := range patches {
		scope := joshscope.NewEntityScope(patch, bridge.Converter())
		resolver := joshscope.NewValueResolver(scope)
		value, err := resolver.Get(path)
		if err != nil {
			return err
		}
		results = append(results, value)
		units = value.GetUnits()
	}
	m.Push(f.BuildRealizedDistribution(results, units))
	return nil
}

// MakePosition pops type2, val2, type1, val1 (top to bottom) and pushes a
// string value encoding the two coordinates, carrying units=position (spec
// §4.6).
func (m *Machine) MakePosition() error {
	f, err := m.factory()
	if err != nil {
		return err
	}
	type2, err := m.pop()
	if err != nil {
		return err
	}
	val2, err := m.pop()
	if err != nil {
		return err
	}
	type1, err := m.pop()
	if err != nil {
		return err
	}
	val1, err := m.pop()
	if err != nil {
		return err
	}

	type1Str, err := type1.AsString()
	if err != nil {
		return err
	}
	type2Str, err := type2.AsString()
	if err != nil {
		return err
	}
	val1Num, err := val1.AsDouble()
	if err != nil {
		return err
	}
	val2Num, err := val2.AsDouble()
	if err != nil {
		return err
	}

	encoded := fmt.Sprintf("%g %s, %g %s", val1Num, type1Str, val2Num, type2Str)
	m.Push(f.BuildString(encoded).ReplaceUnits(joshvalue.Position))
	return nil
}
