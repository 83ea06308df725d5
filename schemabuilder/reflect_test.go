package schemabuilder

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeGraphql(t *testing.T) {
	for in, want := range map[string]string{
		"Name":      "name",
		"ID":        "id",
		"ProjectID": "projectId",
		"CreatedAt": "createdAt",
	} {
		assert.Equal(t, want, makeGraphql(in), in)
	}
}

func TestParseGraphQLFieldInfo(t *testing.T) {
	type args struct {
		ProjectID string
		Title     string `json:"headline"`
		Body      string `graphql:"text,description=Markdown body" json:"body"`
		Ignored   string `graphql:"-"`
		internal  string
	}

	typ := reflect.TypeOf(args{})
	field := func(name string) *graphQLFieldInfo {
		f, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("no field %s", name)
		}
		return parseGraphQLFieldInfo(f)
	}

	assert.Equal(t, &graphQLFieldInfo{Name: "projectId"}, field("ProjectID"))
	assert.Equal(t, &graphQLFieldInfo{Name: "headline"}, field("Title"))
	assert.Equal(t, &graphQLFieldInfo{Name: "text", Description: "Markdown body"}, field("Body"))
	assert.True(t, field("Ignored").Skipped)
	assert.True(t, field("internal").Skipped)
}
