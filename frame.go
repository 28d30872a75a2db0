package dynamic

// A Frame is one active binding instance: an immutable name paired with
// a mutable storage cell and an optional declared type.  The cell is
// private so the only way to touch a binding's value is through the
// resolver; nothing can capture a direct reference to the storage and
// bypass scope discipline.
type Frame struct {
	name  string
	typ   Type
	value interface{}
}

// NewFrame creates a frame holding value.  If typ is non-nil the value
// must conform to it or a *TypeMismatchError is returned and no frame
// is created.
func NewFrame(name string, typ Type, value interface{}) (*Frame, error) {
	if typ != nil && !typ.Accepts(value) {
		return nil, &TypeMismatchError{Name: name, Type: typ, Value: value}
	}
	return &Frame{name: name, typ: typ, value: value}, nil
}

func (f *Frame) Name() string {
	return f.name
}

// Type returns the frame's declared type, or nil if the binding is
// untyped.
func (f *Frame) Type() Type {
	return f.typ
}

// Read returns the current stored value.
func (f *Frame) Read() interface{} {
	return f.value
}

// Write validates v against the declared type, stores it, and returns
// the stored value.  On a *TypeMismatchError the cell is untouched.
func (f *Frame) Write(v interface{}) (interface{}, error) {
	if f.typ != nil && !f.typ.Accepts(v) {
		return nil, &TypeMismatchError{Name: f.name, Type: f.typ, Value: v}
	}
	f.value = v
	return v, nil
}
