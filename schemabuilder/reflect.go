package schemabuilder

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
)

// graphQLFieldInfo contains basic struct field information related to GraphQL.
type graphQLFieldInfo struct {
	// Skipped indicates that this field should not be included in GraphQL.
	Skipped bool

	// Name is the GraphQL field name that should be exposed for this field.
	Name string

	// Description is parsed from `graphql:"name,description=..."`.
	Description string
}

// parseGraphQLFieldInfo parses a struct field and returns a struct with the parsed information about the field (tag info, name, etc).
// The graphql tag wins over the json tag; the only option after the name is
// description=<text>.
func parseGraphQLFieldInfo(field reflect.StructField) *graphQLFieldInfo {
	if field.PkgPath != "" { //If the field of struct is not exported, then it is not exposed
		return &graphQLFieldInfo{Skipped: true}
	}

	tag := field.Tag.Get("graphql")
	if tag == "" {
		tag = field.Tag.Get("json")
	}
	tags := strings.Split(tag, ",")
	name := strings.TrimSpace(tags[0])
	if name == "-" {
		return &graphQLFieldInfo{Skipped: true}
	}

	if name == "" {
		name = makeGraphql(field.Name)
	}

	info := &graphQLFieldInfo{Name: name}
	for _, opt := range tags[1:] {
		opt = strings.TrimSpace(opt)
		if strings.HasPrefix(opt, "description=") {
			info.Description = strings.TrimPrefix(opt, "description=")
		}
	}

	return info
}

// makeGraphql converts a field name "MyField" into a graphQL field name "myField".
// Initialisms are lowered as a whole, so "ProjectID" becomes "projectId".
func makeGraphql(s string) string {
	return strcase.ToLowerCamel(s)
}

// Common Types that we will need to perform type assertions against.
var errType = reflect.TypeOf((*error)(nil)).Elem()
var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var idType = reflect.TypeOf(ID{})
var timeType = reflect.TypeOf(time.Time{})
