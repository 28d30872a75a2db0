package dynamic

// A Binding describes one binding to be established by Stack.Enter: a
// name, an optional declared type, and an initializer.  The initializer
// is either an eager Value or a lazy Init thunk; when Init is non-nil
// it wins and is evaluated at Enter time, in the order the bindings
// were listed.
type Binding struct {
	Name  string
	Type  Type
	Value interface{}
	Init  func() (interface{}, error)
}

// Bind returns an untyped binding of name to an eager value.
func Bind(name string, v interface{}) Binding {
	return Binding{Name: name, Value: v}
}

// BindTyped returns a binding whose initial value and all later writes
// must conform to typ.
func BindTyped(name string, typ Type, v interface{}) Binding {
	return Binding{Name: name, Type: typ, Value: v}
}

// BindInit returns a binding whose initial value is produced by init
// when the scope is entered.  An error from init aborts the Enter that
// evaluates it.
func BindInit(name string, typ Type, init func() (interface{}, error)) Binding {
	return Binding{Name: name, Type: typ, Init: init}
}

func (b Binding) eval() (interface{}, error) {
	if b.Init != nil {
		return b.Init()
	}
	return b.Value, nil
}
