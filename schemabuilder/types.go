package schemabuilder

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

//Object - an Object represents a Go type and set of methods to be converted into an Object in a GraphQL schema.
type Object struct {
	Name        string // Optional, defaults to Type's name.
	Description string
	Type        interface{}
	Methods     Methods
}

// NewObject creates an object descriptor that is not yet attached to a
// schema. Attach it with Schema.AddObject. The description is optional.
func NewObject(name string, typ interface{}, description ...string) *Object {
	if len(description) > 1 {
		panic("at most one description allowed for Object")
	}

	o := &Object{Name: name, Type: typ, Methods: make(Methods)}
	if len(description) == 1 {
		o.Description = description[0]
	}
	return o
}

// A Methods map represents the set of methods exposed on a Object.
type Methods map[string]*method

type method struct {
	Fn                interface{}
	Description       string
	DeprecationReason string
}

// FieldOption customises a field registered with FieldFunc.
type FieldOption func(*method)

// FieldDesc sets the description of a field.
func FieldDesc(description string) FieldOption {
	return func(m *method) {
		m.Description = description
	}
}

// Deprecated marks a field as deprecated with the given reason.
func Deprecated(reason string) FieldOption {
	return func(m *method) {
		m.DeprecationReason = reason
	}
}

// FieldFunc exposes a field on an object. The function f can take a number of
// optional arguments:
// func([ctx context.Context], [o *Type], [args struct {}]) ([Result], [error])
//
// For example, for an object of type User, a fullName field might take just an
// instance of the object:
//    user.FieldFunc("fullName", func(u *User) string {
//       return u.FirstName + " " + u.LastName
//    })
//
// An addUser mutation field might take both a context and arguments:
//    mutation.FieldFunc("addUser", func(ctx context.Context, args struct{
//        FirstName string
//        LastName  string
//    }) (int, error) {
//        userID, err := db.AddUser(ctx, args.FirstName, args.LastName)
//        return userID, err
//    })
//
// Fields on the Subscription object return a receive channel instead:
//    subscription.FieldFunc("ticks", func(ctx context.Context) (<-chan int32, error)
func (s *Object) FieldFunc(name string, f interface{}, opts ...FieldOption) {
	if s.Methods == nil {
		s.Methods = make(Methods)
	}

	if reflect.TypeOf(f).Kind() != reflect.Func {
		panic(fmt.Errorf("field %s on %s is not a function", name, s.Name))
	}

	if _, ok := s.Methods[name]; ok {
		panic(fmt.Errorf("duplicate method %s on %s", name, s.Name))
	}

	m := &method{Fn: f}
	for _, opt := range opts {
		opt(m)
	}
	s.Methods[name] = m
}

// FieldNames returns the names of the registered fields in lexical order.
func (s *Object) FieldNames() []string {
	names := make([]string, 0, len(s.Methods))
	for name := range s.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputObject represents the input objects passed in queries,mutations and subscriptions.
type InputObject struct {
	Name        string
	Type        interface{}
	Fields      map[string]interface{}
	Description string
}

// FieldFunc is used to expose the fields of an input object and determine the method to fill it
// type ServiceProvider struct {
// 	Id                   string
// 	FirstName            string
// }
// inputObj := schema.InputObject("serviceProvider", ServiceProvider{})
// inputObj.FieldFunc("id", func(target *ServiceProvider, source *schemabuilder.ID) {
// 	target.Id = source.Value
// })
// inputObj.FieldFunc("firstName", func(target *ServiceProvider, source *string) {
// 	target.FirstName = *source
// })
// The target variable of the function should be pointer
func (io *InputObject) FieldFunc(name string, function interface{}) {
	funcTyp := reflect.TypeOf(function)

	if funcTyp.Kind() != reflect.Func || funcTyp.NumIn() != 2 {
		panic(fmt.Errorf("can not register field %v on %v as number of input argument should be 2", name, io.Name))
	}

	targetTyp := funcTyp.In(0)
	if targetTyp.Kind() != reflect.Ptr || targetTyp.Elem() != reflect.TypeOf(io.Type) {
		panic(fmt.Errorf("can not register %s on input object %s as the first argument of the function is not a pointer to %T", name, io.Name, io.Type))
	}

	if funcTyp.NumOut() != 0 {
		panic(fmt.Errorf("can not register field %v on %v as the function must not return values", name, io.Name))
	}

	if _, ok := io.Fields[name]; ok {
		panic(fmt.Errorf("duplicate field %s on input object %s", name, io.Name))
	}

	io.Fields[name] = function
}

// EnumMapping is a representation of an enum that includes both the mapping and reverse mapping.
type EnumMapping struct {
	Name        string
	Map         map[string]interface{}
	ReverseMap  map[interface{}]string
	Description string
}

// ID is the graphql ID scalar
type ID struct {
	Value string
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (id ID) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, id.Value), nil
}

// String returns the raw identifier.
func (id ID) String() string {
	return id.Value
}
