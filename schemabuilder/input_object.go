package schemabuilder

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/graphql-go/graphql"
)

// argParser fills dest from a value coerced by graphql-go.
type argParser func(value interface{}, dest reflect.Value) error

// argsParser fills an args struct from the arguments of a field.
type argsParser func(values map[string]interface{}, dest reflect.Value) error

type inputObjectType struct {
	object *graphql.InputObject
	parser argParser
}

// buildArgs generates the argument definitions and the parser for an args struct i.e. the struct
// which contains all the values to be given as input. For eg:
// obj.FieldFunc("name", func(ctx context.Context, args struct{
// 	A createObjectRequest
// }{}))
func (sb *schemaBuilder) buildArgs(typ reflect.Type) (graphql.FieldConfigArgument, argsParser, error) {
	type argField struct {
		index  []int
		parser argParser
	}

	args := graphql.FieldConfigArgument{}
	fields := make(map[string]argField)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			return nil, nil, fmt.Errorf("bad arg type %s: anonymous fields not supported", typ)
		}

		fieldInfo := parseGraphQLFieldInfo(field)
		if fieldInfo.Skipped {
			continue
		}
		if _, ok := fields[fieldInfo.Name]; ok {
			return nil, nil, fmt.Errorf("bad arg type %s: duplicate field %s", typ, fieldInfo.Name)
		}

		argType, parser, err := sb.inputType(field.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("bad arg %s: %w", fieldInfo.Name, err)
		}

		args[fieldInfo.Name] = &graphql.ArgumentConfig{
			Type:        argType,
			Description: fieldInfo.Description,
		}
		fields[fieldInfo.Name] = argField{index: field.Index, parser: parser}
	}

	parse := func(values map[string]interface{}, dest reflect.Value) error {
		for name, value := range values {
			field, ok := fields[name]
			if !ok {
				return fmt.Errorf("unknown arg %s", name)
			}
			if err := field.parser(value, dest.FieldByIndex(field.index)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	}

	return args, parse, nil
}

// inputType maps a Go type to a graphql input type. Pointers are optional,
// everything else is required.
func (sb *schemaBuilder) inputType(typ reflect.Type) (graphql.Input, argParser, error) {
	if typ.Kind() == reflect.Ptr {
		inner, parser, err := sb.inputTypeInner(typ.Elem())
		if err != nil {
			return nil, nil, err
		}
		return inner, wrapPtrParser(parser), nil
	}

	inner, parser, err := sb.inputTypeInner(typ)
	if err != nil {
		return nil, nil, err
	}
	return graphql.NewNonNull(inner), parser, nil
}

func (sb *schemaBuilder) inputTypeInner(typ reflect.Type) (graphql.Input, argParser, error) {
	if typ.Kind() == reflect.Slice {
		return sb.sliceInput(typ)
	}

	if enum, ok := sb.enums[typ]; ok {
		return enum, enumParser(sb.schema.enumTypes[typ]), nil
	}

	if scalar, ok := scalarType(typ); ok {
		return scalar, scalarParser(typ), nil
	}

	if _, ok := sb.inputsByType[typ]; ok {
		input, err := sb.inputObject(typ)
		if err != nil {
			return nil, nil, err
		}
		return input.object, input.parser, nil
	}

	return nil, nil, fmt.Errorf("%s not registered as input object", typ)
}

// wrapPtrParser leaves the pointer nil when no value was given.
func wrapPtrParser(inner argParser) argParser {
	return func(value interface{}, dest reflect.Value) error {
		if value == nil {
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}

		ptr := reflect.New(dest.Type().Elem())
		if err := inner(value, ptr.Elem()); err != nil {
			return err
		}
		dest.Set(ptr)
		return nil
	}
}

func (sb *schemaBuilder) sliceInput(typ reflect.Type) (graphql.Input, argParser, error) {
	elemType, elemParser, err := sb.inputType(typ.Elem())
	if err != nil {
		return nil, nil, err
	}

	return graphql.NewList(elemType), func(value interface{}, dest reflect.Value) error {
		if value == nil {
			return nil
		}

		list, ok := value.([]interface{})
		if !ok {
			list = []interface{}{value}
		}

		slice := reflect.MakeSlice(typ, len(list), len(list))
		for i, item := range list {
			if err := elemParser(item, slice.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		dest.Set(slice)
		return nil
	}, nil
}

func enumParser(mapping *EnumMapping) argParser {
	return func(value interface{}, dest reflect.Value) error {
		if value == nil {
			return nil
		}

		if name, ok := value.(string); ok && reflect.TypeOf(value) != dest.Type() {
			mapped, ok := mapping.Map[name]
			if !ok {
				return fmt.Errorf("unknown %s value %s", mapping.Name, name)
			}
			value = mapped
		}

		v := reflect.ValueOf(value)
		if !v.Type().ConvertibleTo(dest.Type()) {
			return fmt.Errorf("can not use %v as %s", value, mapping.Name)
		}
		dest.Set(v.Convert(dest.Type()))
		return nil
	}
}

func scalarParser(typ reflect.Type) argParser {
	switch typ {
	case idType:
		return func(value interface{}, dest reflect.Value) error {
			if value == nil {
				return nil
			}
			dest.Set(reflect.ValueOf(ID{Value: fmt.Sprint(value)}))
			return nil
		}
	case timeType:
		return func(value interface{}, dest reflect.Value) error {
			switch v := value.(type) {
			case nil:
				return nil
			case time.Time:
				dest.Set(reflect.ValueOf(v))
			case *time.Time:
				dest.Set(reflect.ValueOf(*v))
			case string:
				t, err := time.Parse(time.RFC3339, v)
				if err != nil {
					return err
				}
				dest.Set(reflect.ValueOf(t))
			default:
				return errors.New("invalid DateTime")
			}
			return nil
		}
	}

	return func(value interface{}, dest reflect.Value) error {
		if value == nil {
			return nil
		}

		v := reflect.ValueOf(value)
		switch dest.Kind() {
		case reflect.String:
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", value)
			}
			dest.SetString(s)
		case reflect.Bool:
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("expected bool, got %T", value)
			}
			dest.SetBool(b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !v.CanConvert(reflect.TypeOf(int64(0))) {
				return fmt.Errorf("expected int, got %T", value)
			}
			n := v.Convert(reflect.TypeOf(int64(0))).Int()
			if dest.OverflowInt(n) {
				return fmt.Errorf("%d overflows %s", n, dest.Type())
			}
			dest.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
			if !v.CanConvert(reflect.TypeOf(int64(0))) {
				return fmt.Errorf("expected int, got %T", value)
			}
			n := v.Convert(reflect.TypeOf(int64(0))).Int()
			if n < 0 || dest.OverflowUint(uint64(n)) {
				return fmt.Errorf("%d overflows %s", n, dest.Type())
			}
			dest.SetUint(uint64(n))
		case reflect.Float32, reflect.Float64:
			if !v.CanConvert(reflect.TypeOf(float64(0))) {
				return fmt.Errorf("expected float, got %T", value)
			}
			dest.SetFloat(v.Convert(reflect.TypeOf(float64(0))).Float())
		default:
			return fmt.Errorf("unsupported scalar %s", dest.Type())
		}
		return nil
	}
}

// inputObject builds the graphql input object for a registered struct. The
// registered FieldFuncs copy each provided value into the target struct.
func (sb *schemaBuilder) inputObject(typ reflect.Type) (*inputObjectType, error) {
	if built, ok := sb.inputs[typ]; ok {
		if built == nil {
			return nil, fmt.Errorf("input object %s refers to itself", typ)
		}
		return built, nil
	}
	// Placeholder marks the type as under construction.
	sb.inputs[typ] = nil

	io := sb.inputsByType[typ]

	type inputField struct {
		fn         reflect.Value
		sourceType reflect.Type
		parser     argParser
	}

	names := make([]string, 0, len(io.Fields))
	for name := range io.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := graphql.InputObjectConfigFieldMap{}
	fields := make(map[string]inputField, len(names))
	for _, name := range names {
		fn := reflect.ValueOf(io.Fields[name])
		sourceType := fn.Type().In(1)

		fieldType, parser, err := sb.inputType(sourceType)
		if err != nil {
			delete(sb.inputs, typ)
			return nil, fmt.Errorf("bad field %s on input object %s: %w", name, io.Name, err)
		}
		configs[name] = &graphql.InputObjectFieldConfig{Type: fieldType}
		fields[name] = inputField{fn: fn, sourceType: sourceType, parser: parser}
	}

	if len(fields) == 0 {
		delete(sb.inputs, typ)
		return nil, fmt.Errorf("input object %s has no fields", io.Name)
	}

	built := &inputObjectType{
		object: graphql.NewInputObject(graphql.InputObjectConfig{
			Name:        io.Name,
			Description: io.Description,
			Fields:      configs,
		}),
		parser: func(value interface{}, dest reflect.Value) error {
			if value == nil {
				return nil
			}
			asMap, ok := value.(map[string]interface{})
			if !ok {
				return errors.New("not an object")
			}

			target := reflect.New(typ)
			for name, fieldValue := range asMap {
				field, ok := fields[name]
				if !ok {
					return fmt.Errorf("unknown field %s", name)
				}
				source := reflect.New(field.sourceType).Elem()
				if err := field.parser(fieldValue, source); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				field.fn.Call([]reflect.Value{target, source})
			}
			dest.Set(target.Elem())
			return nil
		},
	}
	sb.inputs[typ] = built
	return built, nil
}

// buildInputObjects builds registered input objects that no field refers to.
func (sb *schemaBuilder) buildInputObjects() error {
	for _, name := range sb.schema.inputOrder {
		typ, _ := structType(sb.schema.inputObjects[name].Type)
		if _, err := sb.inputObject(typ); err != nil {
			return err
		}
	}
	return nil
}
