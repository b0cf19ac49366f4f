package joshvalue

// Factory constructs EngineValues (spec §4.1). Its FavorBigDecimal flag
// chooses whether AsDecimal favors exact decimal rendering or IEEE-754
// double rendering; the flag never changes which operations succeed or
// fail, only how a scalar's decimal coercion is formatted.
type Factory struct {
	FavorBigDecimal bool
}

// NewFactory builds a Factory. favorBigDecimal mirrors the deployment-wide
// flag described in spec §4.1.
func NewFactory(favorBigDecimal bool) *Factory {
	return &Factory{FavorBigDecimal: favorBigDecimal}
}

// BuildScalar constructs a Scalar EngineValue.
func (f *Factory) BuildScalar(number float64, units Units) *EngineValue {
	return &EngineValue{kind: TypeScalar, number: number, units: units, bigNum: f.FavorBigDecimal}
}

// BuildBoolean constructs a Boolean EngineValue (units is always
// dimensionless).
func (f *Factory) BuildBoolean(b bool) *EngineValue {
	return &EngineValue{kind: TypeBoolean, boolean: b, units: Dimensionless}
}

// BuildString constructs a String EngineValue.
func (f *Factory) BuildString(s string) *EngineValue {
	return &EngineValue{kind: TypeString, str: s, units: Dimensionless}
}

// BuildEntity constructs an EntityRef EngineValue; units is the entity's
// type name.
func (f *Factory) BuildEntity(e EntityHandle) *EngineValue {
	units := Dimensionless
	if e != nil {
		units = Units(e.EntityTypeName())
	}
	return &EngineValue{kind: TypeEntity, entity: e, units: units}
}

// BuildRealizedDistribution constructs a Distribution EngineValue backed by
// a finite, in-memory sequence.
func (f *Factory) BuildRealizedDistribution(items []*EngineValue, units Units) *EngineValue {
	return &EngineValue{kind: TypeDistribution, dist: NewRealizedDistribution(items), units: units}
}

// BuildVirtualizedDistribution constructs a Distribution EngineValue backed
// by a lazy generator of possibly-unknown size.
func (f *Factory) BuildVirtualizedDistribution(gen Generator, units Units) *EngineValue {
	return &EngineValue{kind: TypeDistribution, dist: NewVirtualizedDistribution(gen), units: units}
}
