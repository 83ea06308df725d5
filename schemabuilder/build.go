package schemabuilder

import (
	"context"
	"fmt"
	"reflect"

	"github.com/graphql-go/graphql"
)

// schemaBuilder is a struct for holding all the graph information for types as
// we build out graphql types for our graphql schema.
type schemaBuilder struct {
	schema *Schema

	objects       map[reflect.Type]*graphql.Object
	objectsByName map[string]*graphql.Object
	fields        map[string]graphql.Fields

	enums        map[reflect.Type]*graphql.Enum
	inputsByType map[reflect.Type]*InputObject
	inputs       map[reflect.Type]*inputObjectType
}

func newSchemaBuilder(s *Schema) *schemaBuilder {
	sb := &schemaBuilder{
		schema:        s,
		objects:       make(map[reflect.Type]*graphql.Object),
		objectsByName: make(map[string]*graphql.Object),
		fields:        make(map[string]graphql.Fields),
		enums:         make(map[reflect.Type]*graphql.Enum),
		inputsByType:  make(map[reflect.Type]*InputObject),
		inputs:        make(map[reflect.Type]*inputObjectType),
	}
	return sb
}

func isRootObject(name string) bool {
	return name == "Query" || name == "Mutation" || name == "Subscription"
}

// structType returns the struct type behind a registered object value.
func structType(typ interface{}) (reflect.Type, error) {
	t := reflect.TypeOf(typ)
	if t == nil {
		return nil, fmt.Errorf("nil type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct", t)
	}
	return t, nil
}

// declareTypes creates the named graphql types. Object fields are supplied
// through thunks so objects may refer to each other in any order.
func (sb *schemaBuilder) declareTypes() error {
	for typ, mapping := range sb.schema.enumTypes {
		values := graphql.EnumValueConfigMap{}
		for name, value := range mapping.Map {
			values[name] = &graphql.EnumValueConfig{Value: value}
		}
		sb.enums[typ] = graphql.NewEnum(graphql.EnumConfig{
			Name:        mapping.Name,
			Description: mapping.Description,
			Values:      values,
		})
	}

	for _, name := range sb.schema.inputOrder {
		io := sb.schema.inputObjects[name]
		typ, err := structType(io.Type)
		if err != nil {
			return fmt.Errorf("bad input object %s: %w", name, err)
		}
		if prev, ok := sb.inputsByType[typ]; ok {
			return fmt.Errorf("type %s registered as input objects %s and %s", typ, prev.Name, name)
		}
		sb.inputsByType[typ] = io
	}

	for _, name := range sb.schema.objectOrder {
		object := sb.schema.objects[name]
		typ, err := structType(object.Type)
		if err != nil {
			return fmt.Errorf("bad object %s: %w", name, err)
		}
		if _, ok := sb.objects[typ]; ok {
			return fmt.Errorf("type %s registered as more than one object", typ)
		}

		objectName := name
		gqlObject := graphql.NewObject(graphql.ObjectConfig{
			Name:        objectName,
			Description: object.Description,
			Fields: graphql.FieldsThunk(func() graphql.Fields {
				return sb.fields[objectName]
			}),
		})
		sb.objects[typ] = gqlObject
		sb.objectsByName[objectName] = gqlObject
	}

	return nil
}

// buildFields converts every registered method into a graphql field.
func (sb *schemaBuilder) buildFields() error {
	for _, name := range sb.schema.objectOrder {
		object := sb.schema.objects[name]
		fields := graphql.Fields{}
		for _, fieldName := range object.FieldNames() {
			field, err := sb.buildField(object, fieldName, object.Methods[fieldName])
			if err != nil {
				return fmt.Errorf("bad method %s on type %s: %w", fieldName, name, err)
			}
			fields[fieldName] = field
		}

		if len(fields) == 0 && !isRootObject(name) {
			return fmt.Errorf("object %s has no fields", name)
		}
		sb.fields[name] = fields
	}

	return nil
}

// rootObject returns a root operation object when it has fields.
func (sb *schemaBuilder) rootObject(name string) (*graphql.Object, bool) {
	if len(sb.fields[name]) == 0 {
		return nil, false
	}
	return sb.objectsByName[name], true
}

// namedTypes lists every non-root type so that registered objects appear in
// the schema even when no field returns them.
func (sb *schemaBuilder) namedTypes() []graphql.Type {
	types := make([]graphql.Type, 0, len(sb.objectsByName)+len(sb.enums)+len(sb.inputs))
	for _, name := range sb.schema.objectOrder {
		if isRootObject(name) {
			continue
		}
		types = append(types, sb.objectsByName[name])
	}
	for _, enum := range sb.enums {
		types = append(types, enum)
	}
	for _, input := range sb.inputs {
		if input != nil {
			types = append(types, input.object)
		}
	}
	return types
}

// funcInfo describes the shape of a registered field function.
type funcInfo struct {
	fn reflect.Value

	hasContext bool
	hasSource  bool
	hasArgs    bool
	hasError   bool

	sourceType reflect.Type
	argsType   reflect.Type
	returnType reflect.Type
}

func (sb *schemaBuilder) analyzeFunc(object *Object, fn interface{}) (*funcInfo, error) {
	info := &funcInfo{fn: reflect.ValueOf(fn)}
	ft := info.fn.Type()

	in := 0
	if in < ft.NumIn() && ft.In(in) == contextType {
		info.hasContext = true
		in++
	}

	if !isRootObject(object.Name) {
		objType, err := structType(object.Type)
		if err != nil {
			return nil, err
		}
		if in < ft.NumIn() {
			t := ft.In(in)
			if t == objType || (t.Kind() == reflect.Ptr && t.Elem() == objType) {
				info.hasSource = true
				info.sourceType = t
				in++
			}
		}
	}

	if in < ft.NumIn() && ft.In(in).Kind() == reflect.Struct {
		info.hasArgs = true
		info.argsType = ft.In(in)
		in++
	}

	if in != ft.NumIn() {
		return nil, fmt.Errorf("unexpected argument %d of type %s", in, ft.In(in))
	}

	out := ft.NumOut()
	if out > 0 && ft.Out(out-1) == errType {
		info.hasError = true
		out--
	}
	if out != 1 {
		return nil, fmt.Errorf("field func must return a value and optionally an error")
	}
	info.returnType = ft.Out(0)

	return info, nil
}

func (sb *schemaBuilder) buildField(object *Object, name string, m *method) (*graphql.Field, error) {
	info, err := sb.analyzeFunc(object, m.Fn)
	if err != nil {
		return nil, err
	}

	field := &graphql.Field{
		Name:              name,
		Description:       m.Description,
		DeprecationReason: m.DeprecationReason,
	}

	var parseArgs argsParser
	if info.hasArgs {
		args, parser, err := sb.buildArgs(info.argsType)
		if err != nil {
			return nil, err
		}
		field.Args = args
		parseArgs = parser
	}

	call := func(p graphql.ResolveParams) ([]reflect.Value, error) {
		in := make([]reflect.Value, 0, 3)
		if info.hasContext {
			in = append(in, reflect.ValueOf(contextOf(p)))
		}
		if info.hasSource {
			source, err := sourceValue(p.Source, info.sourceType)
			if err != nil {
				return nil, err
			}
			in = append(in, source)
		}
		if info.hasArgs {
			args := reflect.New(info.argsType).Elem()
			if err := parseArgs(p.Args, args); err != nil {
				return nil, err
			}
			in = append(in, args)
		}

		out := info.fn.Call(in)
		if info.hasError {
			if errValue := out[len(out)-1]; !errValue.IsNil() {
				return nil, errValue.Interface().(error)
			}
		}
		return out, nil
	}

	if object.Name == "Subscription" {
		return sb.buildSubscriptionField(field, info, call)
	}

	field.Type, err = sb.outputType(info.returnType)
	if err != nil {
		return nil, err
	}
	field.Resolve = func(p graphql.ResolveParams) (interface{}, error) {
		out, err := call(p)
		if err != nil {
			return nil, err
		}
		return resultValue(out[0]), nil
	}

	return field, nil
}

// buildSubscriptionField adapts a func returning a receive channel to the
// graphql-go Subscribe contract. Every value received from the channel becomes
// the source of one execution of the field.
func (sb *schemaBuilder) buildSubscriptionField(field *graphql.Field, info *funcInfo, call func(graphql.ResolveParams) ([]reflect.Value, error)) (*graphql.Field, error) {
	if info.returnType.Kind() != reflect.Chan || info.returnType.ChanDir()&reflect.RecvDir == 0 {
		return nil, fmt.Errorf("subscription field must return a receive channel, got %s", info.returnType)
	}

	var err error
	field.Type, err = sb.outputType(info.returnType.Elem())
	if err != nil {
		return nil, err
	}

	field.Subscribe = func(p graphql.ResolveParams) (interface{}, error) {
		out, err := call(p)
		if err != nil {
			return nil, err
		}
		source := out[0]
		if source.IsNil() {
			return nil, fmt.Errorf("subscription %s returned a nil channel", field.Name)
		}

		ctx := contextOf(p)
		events := make(chan interface{})
		go func() {
			defer close(events)
			cases := []reflect.SelectCase{
				{Dir: reflect.SelectRecv, Chan: source},
				{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
			}
			for {
				chosen, value, ok := reflect.Select(cases)
				if chosen == 1 || !ok {
					return
				}
				select {
				case events <- value.Interface():
				case <-ctx.Done():
					return
				}
			}
		}()
		return events, nil
	}
	field.Resolve = func(p graphql.ResolveParams) (interface{}, error) {
		return resultValue(reflect.ValueOf(p.Source)), nil
	}

	return field, nil
}

func contextOf(p graphql.ResolveParams) context.Context {
	if p.Context == nil {
		return context.Background()
	}
	return p.Context
}

// sourceValue converts the parent value handed out by graphql-go into the
// pointer or value type the field func expects.
func sourceValue(source interface{}, want reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(source)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("nil source for %s", want)
	}

	switch {
	case v.Type() == want:
		return v, nil
	case want.Kind() == reflect.Ptr && v.Type() == want.Elem():
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return ptr, nil
	case v.Kind() == reflect.Ptr && v.Type().Elem() == want:
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil source for %s", want)
		}
		return v.Elem(), nil
	}

	return reflect.Value{}, fmt.Errorf("source of type %s can not be used as %s", v.Type(), want)
}

// resultValue unwraps a returned value into something graphql-go can
// complete: typed nils become nil, nil slices become empty lists and ID
// values become their string form.
func resultValue(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}
		if v.Type().Elem() == idType {
			ids := make([]string, v.Len())
			for i := range ids {
				ids[i] = v.Index(i).Interface().(ID).Value
			}
			return ids
		}
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
		if v.Kind() == reflect.Ptr && v.Type().Elem() == idType {
			return v.Elem().Interface().(ID).Value
		}
	}

	if v.Type() == idType {
		return v.Interface().(ID).Value
	}
	return v.Interface()
}

// outputType maps a Go type to a graphql output type. Pointers are nullable,
// everything else is non-null. Slices become lists.
func (sb *schemaBuilder) outputType(typ reflect.Type) (graphql.Output, error) {
	if typ.Kind() == reflect.Ptr {
		return sb.outputTypeInner(typ.Elem())
	}

	inner, err := sb.outputTypeInner(typ)
	if err != nil {
		return nil, err
	}
	return graphql.NewNonNull(inner), nil
}

func (sb *schemaBuilder) outputTypeInner(typ reflect.Type) (graphql.Output, error) {
	if typ.Kind() == reflect.Slice {
		elem, err := sb.outputType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return graphql.NewList(elem), nil
	}

	if enum, ok := sb.enums[typ]; ok {
		return enum, nil
	}
	if scalar, ok := scalarType(typ); ok {
		return scalar, nil
	}
	if object, ok := sb.objects[typ]; ok {
		return object, nil
	}

	return nil, fmt.Errorf("%s not registered as object", typ)
}

// scalarType returns the built-in scalar for typ.
func scalarType(typ reflect.Type) (*graphql.Scalar, bool) {
	switch typ {
	case idType:
		return graphql.ID, true
	case timeType:
		return graphql.DateTime, true
	}

	switch typ.Kind() {
	case reflect.String:
		return graphql.String, true
	case reflect.Bool:
		return graphql.Boolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return graphql.Int, true
	case reflect.Float32, reflect.Float64:
		return graphql.Float, true
	}
	return nil, false
}
