package schemabuilder

import (
	"fmt"
	"reflect"

	"github.com/graphql-go/graphql"
)

// Schema is a struct that can be used to build out a GraphQL schema. Functions
// can be registered against the "Mutation", "Query" and "Subscription" objects
// in order to build out a full GraphQL schema.
type Schema struct {
	objects      map[string]*Object
	objectOrder  []string
	enumTypes    map[reflect.Type]*EnumMapping
	inputObjects map[string]*InputObject
	inputOrder   []string
}

// NewSchema creates a new schema.
func NewSchema() *Schema {
	schema := &Schema{
		objects:      make(map[string]*Object),
		enumTypes:    make(map[reflect.Type]*EnumMapping),
		inputObjects: make(map[string]*InputObject),
	}

	return schema
}

type query struct{}
type mutation struct{}
type subscription struct{}

// Query returns an Object struct that we can use to register all the top level
// graphql query functions we'd like to expose.
func (s *Schema) Query() *Object {
	return s.Object("Query", query{})
}

// Mutation returns an Object struct that we can use to register all the top level
// graphql mutation functions we'd like to expose.
func (s *Schema) Mutation() *Object {
	return s.Object("Mutation", mutation{})
}

// Subscription returns an Object struct that we can use to register all the top level
// graphql subscription functions we'd like to expose.
func (s *Schema) Subscription() *Object {
	return s.Object("Subscription", subscription{})
}

// Object registers a struct as a GraphQL Object in our Schema. We'll read the fields
// of the struct to determine it's basic "Fields" and we'll return an Object struct
// that we can use to register custom relationships and fields on the object.
// Calling Object again with the same name returns the registered object.
func (s *Schema) Object(name string, typ interface{}, description ...string) *Object {
	if object, ok := s.objects[name]; ok {
		if reflect.TypeOf(object.Type) != reflect.TypeOf(typ) {
			panic("re-registered object with different type")
		}
		return object
	}

	object := NewObject(name, typ, description...)
	s.AddObject(object)
	return object
}

// AddObject attaches an object built with NewObject. The object is shared,
// not copied: Build only reads it.
func (s *Schema) AddObject(object *Object) {
	if object.Name == "" {
		panic("object must have a name")
	}
	if existing, ok := s.objects[object.Name]; ok {
		if existing == object {
			return
		}
		panic(fmt.Sprintf("duplicate object %s", object.Name))
	}

	s.objects[object.Name] = object
	s.objectOrder = append(s.objectOrder, object.Name)
}

// Enum registers an enumType in the schema. The val should be any arbitrary value
// of the enumType to be used for reflection, and the enumMap should be
// the corresponding map of the enums.
//
// For example a enum could be declared as follows:
//   type enumType int32
//   const (
//	  one   enumType = 1
//	  two   enumType = 2
//	  three enumType = 3
//   )
//
// Then the Enum can be registered as:
//   s.Enum(enumType(1), map[string]interface{}{
//     "one":   enumType(1),
//     "two":   enumType(2),
//     "three": enumType(3),
//   })
func (s *Schema) Enum(val interface{}, enumMap map[string]interface{}, description ...string) {
	typ := reflect.TypeOf(val)
	if typ.Kind() == reflect.Ptr {
		panic("enum type should not be a pointer")
	}
	if s.enumTypes[typ] != nil {
		panic("duplicate enum")
	}

	rMap := make(map[interface{}]string, len(enumMap))
	for key, value := range enumMap {
		v := reflect.ValueOf(value)
		if v.Type() != typ {
			panic(fmt.Sprintf("enum value %s of %s has type %s", key, typ.Name(), v.Type()))
		}
		rMap[value] = key
	}

	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	s.enumTypes[typ] = &EnumMapping{Name: typ.Name(), Map: enumMap, ReverseMap: rMap, Description: desc}
}

// InputObject registers a struct as inout object which can be passed as an argument to a Query or Mutation
// We'll read through the fields of the struct and create argument parsers to fill the data from graphQL JSON input
func (s *Schema) InputObject(name string, typ interface{}, description ...string) *InputObject {
	if inputObject, ok := s.inputObjects[name]; ok {
		if reflect.TypeOf(inputObject.Type) != reflect.TypeOf(typ) {
			panic("re-registered input object with different type")
		}
		return inputObject
	}

	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	inputObject := &InputObject{
		Name:        name,
		Type:        typ,
		Fields:      map[string]interface{}{},
		Description: desc,
	}
	s.inputObjects[name] = inputObject
	s.inputOrder = append(s.inputOrder, name)

	return inputObject
}

// Build takes the schema we have built on our Query, Mutation and Subscription starting points and builds a full graphql.Schema
// We use graphql.Schema to execute and run queries. Essentially we read through all the methods we've attached to our
// Query, Mutation and Subscription Objects and ensure that those functions are returning other Objects that we can resolve in our GraphQL graph.
func (s *Schema) Build() (*graphql.Schema, error) {
	sb := newSchemaBuilder(s)

	if err := sb.declareTypes(); err != nil {
		return nil, err
	}
	if err := sb.buildFields(); err != nil {
		return nil, err
	}
	if err := sb.buildInputObjects(); err != nil {
		return nil, err
	}

	cfg := graphql.SchemaConfig{}
	if q, ok := sb.rootObject("Query"); ok {
		cfg.Query = q
	} else {
		return nil, fmt.Errorf("schema has no Query fields")
	}
	if m, ok := sb.rootObject("Mutation"); ok {
		cfg.Mutation = m
	}
	if sub, ok := sb.rootObject("Subscription"); ok {
		cfg.Subscription = sub
	}
	cfg.Types = sb.namedTypes()

	schema, err := graphql.NewSchema(cfg)
	if err != nil {
		return nil, fmt.Errorf("building schema: %w", err)
	}
	return &schema, nil
}

// MustBuild builds a schema and panics if an error occurs.
func (s *Schema) MustBuild() *graphql.Schema {
	built, err := s.Build()
	if err != nil {
		panic(err)
	}
	return built
}
