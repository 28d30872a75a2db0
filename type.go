package dynamic

import "time"

// A Type is the declared constraint on a binding's storage cell.  When a
// frame carries a Type, both its initial value and every later write are
// checked against it.  An untyped binding (nil Type) accepts any value.
type Type interface {
	// ID returns a small unique identifier for this type.
	ID() int
	String() string
	// Accepts reports whether v is a legal value of this type.
	Accepts(v interface{}) bool
}

var (
	TypeInt64    = &TypeOfInt64{}
	TypeUint64   = &TypeOfUint64{}
	TypeFloat64  = &TypeOfFloat64{}
	TypeString   = &TypeOfString{}
	TypeBool     = &TypeOfBool{}
	TypeTime     = &TypeOfTime{}
	TypeDuration = &TypeOfDuration{}
)

const (
	IDInt64 = iota
	IDUint64
	IDFloat64
	IDString
	IDBool
	IDTime
	IDDuration
)

type TypeOfInt64 struct{}

func (t *TypeOfInt64) ID() int        { return IDInt64 }
func (t *TypeOfInt64) String() string { return "int64" }
func (t *TypeOfInt64) Accepts(v interface{}) bool {
	_, ok := v.(int64)
	return ok
}

type TypeOfUint64 struct{}

func (t *TypeOfUint64) ID() int        { return IDUint64 }
func (t *TypeOfUint64) String() string { return "uint64" }
func (t *TypeOfUint64) Accepts(v interface{}) bool {
	_, ok := v.(uint64)
	return ok
}

type TypeOfFloat64 struct{}

func (t *TypeOfFloat64) ID() int        { return IDFloat64 }
func (t *TypeOfFloat64) String() string { return "float64" }
func (t *TypeOfFloat64) Accepts(v interface{}) bool {
	_, ok := v.(float64)
	return ok
}

type TypeOfString struct{}

func (t *TypeOfString) ID() int        { return IDString }
func (t *TypeOfString) String() string { return "string" }
func (t *TypeOfString) Accepts(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

type TypeOfBool struct{}

func (t *TypeOfBool) ID() int        { return IDBool }
func (t *TypeOfBool) String() string { return "bool" }
func (t *TypeOfBool) Accepts(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

type TypeOfTime struct{}

func (t *TypeOfTime) ID() int        { return IDTime }
func (t *TypeOfTime) String() string { return "time" }
func (t *TypeOfTime) Accepts(v interface{}) bool {
	_, ok := v.(time.Time)
	return ok
}

type TypeOfDuration struct{}

func (t *TypeOfDuration) ID() int        { return IDDuration }
func (t *TypeOfDuration) String() string { return "duration" }
func (t *TypeOfDuration) Accepts(v interface{}) bool {
	_, ok := v.(time.Duration)
	return ok
}

// LookupPrimitive returns the Type for the given primitive type name,
// or nil if the name does not denote a primitive type.
func LookupPrimitive(name string) Type {
	switch name {
	case "int64":
		return TypeInt64
	case "uint64":
		return TypeUint64
	case "float64":
		return TypeFloat64
	case "string":
		return TypeString
	case "bool":
		return TypeBool
	case "time":
		return TypeTime
	case "duration":
		return TypeDuration
	}
	return nil
}

// TypeOf returns the primitive Type of a Go value, or nil if the value
// is not an instance of any primitive type.
func TypeOf(v interface{}) Type {
	switch v.(type) {
	case int64:
		return TypeInt64
	case uint64:
		return TypeUint64
	case float64:
		return TypeFloat64
	case string:
		return TypeString
	case bool:
		return TypeBool
	case time.Time:
		return TypeTime
	case time.Duration:
		return TypeDuration
	}
	return nil
}
