package attrparam

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Sentinel errors for schema construction and validation.
var (
	// ErrEmptyName indicates a parameter or definition without a name.
	ErrEmptyName = errors.New("attrparam: name is empty")

	// ErrBadRange indicates min > max or a non-finite bound.
	ErrBadRange = errors.New("attrparam: invalid range")

	// ErrNoAllowedValues indicates a string parameter with an empty
	// allowed-value list.
	ErrNoAllowedValues = errors.New("attrparam: no allowed values")

	// ErrKindMismatch indicates a value of one kind checked against a
	// parameter of another.
	ErrKindMismatch = errors.New("attrparam: value kind does not match parameter kind")

	// ErrOutOfRange indicates a numeric value outside its parameter's
	// bounds (non-finite floats included).
	ErrOutOfRange = errors.New("attrparam: value out of range")

	// ErrNotAllowed indicates a string value absent from the allowed list.
	ErrNotAllowed = errors.New("attrparam: value not allowed")

	// ErrUnknownParam indicates a value keyed by a name the definition
	// does not declare.
	ErrUnknownParam = errors.New("attrparam: unknown parameter")

	// ErrDuplicateParam indicates two parameters sharing a name within
	// one definition.
	ErrDuplicateParam = errors.New("attrparam: duplicate parameter")
)

// Kind tags the variant carried by a Param or Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param is one named, typed parameter of an attribute schema. Exactly the
// constraint fields of its Kind are meaningful; construct through
// IntParam, FloatParam, or StringParam so the invariants hold.
type Param struct {
	Name string
	Kind Kind

	// KindInt bounds, inclusive.
	MinInt, MaxInt int64

	// KindFloat bounds, inclusive.
	MinFloat, MaxFloat float64

	// KindString allowed values.
	Allowed []string
}

// IntParam declares an integer parameter with inclusive bounds.
func IntParam(name string, min, max int64) (Param, error) {
	if name == "" {
		return Param{}, ErrEmptyName
	}
	if min > max {
		return Param{}, fmt.Errorf("%w: %s [%d, %d]", ErrBadRange, name, min, max)
	}

	return Param{Name: name, Kind: KindInt, MinInt: min, MaxInt: max}, nil
}

// FloatParam declares a float parameter with inclusive finite bounds.
func FloatParam(name string, min, max float64) (Param, error) {
	if name == "" {
		return Param{}, ErrEmptyName
	}
	if min > max || math.IsNaN(min) || math.IsNaN(max) ||
		math.IsInf(min, 0) || math.IsInf(max, 0) {
		return Param{}, fmt.Errorf("%w: %s [%v, %v]", ErrBadRange, name, min, max)
	}

	return Param{Name: name, Kind: KindFloat, MinFloat: min, MaxFloat: max}, nil
}

// StringParam declares a string parameter restricted to the given values.
func StringParam(name string, allowed ...string) (Param, error) {
	if name == "" {
		return Param{}, ErrEmptyName
	}
	if len(allowed) == 0 {
		return Param{}, fmt.Errorf("%w: %s", ErrNoAllowedValues, name)
	}

	return Param{Name: name, Kind: KindString, Allowed: slices.Clone(allowed)}, nil
}

// Value is a tagged attribute value. Construct through Int, Float, or
// Str; only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	i    int64
	f    float64
	s    string
}

// Int wraps an integer value.
func Int(v int64) Value { return Value{Kind: KindInt, i: v} }

// Float wraps a float value.
func Float(v float64) Value { return Value{Kind: KindFloat, f: v} }

// Str wraps a string value.
func Str(v string) Value { return Value{Kind: KindString, s: v} }

// IntVal returns the integer payload; valid only for KindInt.
func (v Value) IntVal() int64 { return v.i }

// FloatVal returns the float payload; valid only for KindFloat.
func (v Value) FloatVal() float64 { return v.f }

// StrVal returns the string payload; valid only for KindString.
func (v Value) StrVal() string { return v.s }

// String implements fmt.Stringer for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	default:
		return fmt.Sprintf("Value(kind=%d)", int(v.Kind))
	}
}

// Validate checks one value against one parameter. The single switch on
// the kind tag is the whole validation machinery: range check for the
// numeric kinds, membership for strings. Kind mismatch, out-of-range, and
// not-allowed are distinct wrapped sentinels.
func Validate(p Param, v Value) error {
	if p.Kind != v.Kind {
		return fmt.Errorf("%w: %s wants %s, got %s", ErrKindMismatch, p.Name, p.Kind, v.Kind)
	}

	switch p.Kind {
	case KindInt:
		if v.i < p.MinInt || v.i > p.MaxInt {
			return fmt.Errorf("%w: %s=%d outside [%d, %d]", ErrOutOfRange, p.Name, v.i, p.MinInt, p.MaxInt)
		}
	case KindFloat:
		if math.IsNaN(v.f) || v.f < p.MinFloat || v.f > p.MaxFloat {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrOutOfRange, p.Name, v.f, p.MinFloat, p.MaxFloat)
		}
	case KindString:
		if !slices.Contains(p.Allowed, v.s) {
			return fmt.Errorf("%w: %s=%q not in %v", ErrNotAllowed, p.Name, v.s, p.Allowed)
		}
	}

	return nil
}

// Definition is the named schema of one attribute: an ordered parameter
// list with unique names.
type Definition struct {
	Name   string
	Params []Param
}

// NewDefinition builds a schema, rejecting empty and duplicate names.
func NewDefinition(name string, params ...Param) (Definition, error) {
	if name == "" {
		return Definition{}, ErrEmptyName
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return Definition{}, fmt.Errorf("%w: definition %s", ErrEmptyName, name)
		}
		if _, dup := seen[p.Name]; dup {
			return Definition{}, fmt.Errorf("%w: %s.%s", ErrDuplicateParam, name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return Definition{Name: name, Params: slices.Clone(params)}, nil
}

// Param returns the parameter named name, if declared.
func (d Definition) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// ValidateAll checks every provided value against its declared parameter.
// Values for undeclared names are ErrUnknownParam; declared parameters
// without a value are fine (attributes are sparse). All violations are
// joined, so the caller sees the full list at once.
func (d Definition) ValidateAll(values map[string]Value) error {
	var errs []error
	for _, p := range d.Params {
		v, ok := values[p.Name]
		if !ok {
			continue
		}
		if err := Validate(p, v); err != nil {
			errs = append(errs, err)
		}
	}
	for name := range values {
		if _, ok := d.Param(name); !ok {
			errs = append(errs, fmt.Errorf("%w: %s.%s", ErrUnknownParam, d.Name, name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	// Deterministic order for the joined message.
	slices.SortFunc(errs, func(a, b error) int {
		switch {
		case a.Error() < b.Error():
			return -1
		case a.Error() > b.Error():
			return 1
		default:
			return 0
		}
	})

	return errors.Join(errs...)
}
