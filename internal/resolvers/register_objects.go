package resolvers

import (
	"go.appointy.com/guild/internal/resolvers/types"
	"go.appointy.com/guild/schemabuilder"
)

// RegisteredType describes one entry of the type registry.
type RegisteredType struct {
	Name        string
	Description string
	Fields      []string
}

func registeredType(obj *schemabuilder.Object) *RegisteredType {
	return &RegisteredType{
		Name:        obj.Name,
		Description: obj.Description,
		Fields:      obj.FieldNames(),
	}
}

// RegisterObjects adds every registry entry to sb in declaration order.
func RegisterObjects(sb *schemabuilder.Schema) {
	for _, obj := range types.All().Entries() {
		sb.AddObject(obj)
	}

	rt := sb.Object("RegisteredType", RegisteredType{}, "An object type known to the type registry.")
	rt.FieldFunc("name", func(t *RegisteredType) string { return t.Name })
	rt.FieldFunc("description", func(t *RegisteredType) string { return t.Description })
	rt.FieldFunc("fields", func(t *RegisteredType) []string { return t.Fields })
}
