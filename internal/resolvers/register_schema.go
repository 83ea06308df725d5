package resolvers

import "go.appointy.com/guild/schemabuilder"

// RegisterSchema registers everything the guild schema exposes. Enums come
// first so objects and inputs can refer to them.
func RegisterSchema(sb *schemabuilder.Schema, s *Server) {
	RegisterEnums(sb)
	RegisterObjects(sb)
	RegisterInputs(sb)

	RegisterQuery(sb, s)
	RegisterMutation(sb, s)
	RegisterSubscription(sb, s)
}
