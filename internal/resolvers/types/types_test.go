package types_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/guild/internal/models"
	"go.appointy.com/guild/internal/resolvers/types"
	"go.appointy.com/guild/internal/store"
	"go.appointy.com/guild/schemabuilder"
)

var declared = []string{
	"UserAccount",
	"ExternalAccount",
	"UserProfile",
	"Project",
	"ProjectTrade",
	"ProjectComment",
	"ProjectTask",
	"ProjectApprenticeTask",
	"ProjectStudent",
	"ProjectMasterTradesman",
}

func TestGet(t *testing.T) {
	r := types.Build()

	for _, name := range declared {
		obj, err := r.Get(name)
		require.NoError(t, err, name)
		require.NotNil(t, obj, name)
		assert.Equal(t, name, obj.Name)
	}

	project, err := r.Get("Project")
	require.NoError(t, err)
	assert.Same(t, types.Project, project)

	for _, name := range []string{"", "Unknown", "project", "PROJECT", "Projects", " Project"} {
		obj, err := r.Get(name)
		assert.ErrorIs(t, err, types.ErrUnknownTypeName, "%q", name)
		assert.Nil(t, obj)
	}
}

func TestEntries(t *testing.T) {
	r := types.Build()
	require.Equal(t, len(declared), r.Len())
	require.Equal(t, declared, r.Names())

	collect := func() ([]string, []*schemabuilder.Object) {
		var names []string
		var objects []*schemabuilder.Object
		for name, obj := range r.Entries() {
			names = append(names, name)
			objects = append(objects, obj)
		}
		return names, objects
	}

	names, objects := collect()
	require.Equal(t, declared, names)
	for i, name := range names {
		got, err := r.Get(name)
		require.NoError(t, err)
		assert.Same(t, got, objects[i])
	}

	again, _ := collect()
	assert.Equal(t, names, again, "second pass over Entries")

	var first []string
	for name := range r.Entries() {
		first = append(first, name)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, declared[:3], first)

	r.Names()[0] = "changed"
	assert.Equal(t, declared, r.Names())
}

func TestBuildIsIdempotent(t *testing.T) {
	a, b := types.Build(), types.Build()
	require.Equal(t, a.Names(), b.Names())
	for _, name := range declared {
		x, _ := a.Get(name)
		y, _ := b.Get(name)
		assert.Same(t, x, y, name)
	}
	assert.Same(t, types.All(), types.All())
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := types.All()
			name := declared[i%len(declared)]
			obj, err := r.Get(name)
			assert.NoError(t, err)
			assert.Equal(t, name, obj.Name)
			n := 0
			for range r.Entries() {
				n++
			}
			assert.Equal(t, len(declared), n)
		}(i)
	}
	wg.Wait()
}

func buildSchema(t *testing.T) *graphql.Schema {
	t.Helper()

	s := schemabuilder.NewSchema()
	for _, obj := range types.All().Entries() {
		s.AddObject(obj)
	}
	s.Query().FieldFunc("project", func(ctx context.Context, args struct{ ID schemabuilder.ID }) (*models.Project, error) {
		st, err := store.FromContext(ctx)
		if err != nil {
			return nil, err
		}
		return st.Project(ctx, args.ID.Value)
	})

	schema, err := s.Build()
	require.NoError(t, err)
	return schema
}

func TestResolveRelations(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })

	owner := &models.UserAccount{Email: "ada@example.com", DisplayName: "Ada", Role: models.RoleMasterTradesman}
	require.NoError(t, st.CreateUserAccount(ctx, owner))
	require.NoError(t, st.SaveUserProfile(ctx, &models.UserProfile{UserAccountID: owner.ID, FirstName: "Ada", LastName: "Lovelace"}))

	project := &models.Project{OwnerID: owner.ID, Title: "Timber frame barn"}
	require.NoError(t, st.CreateProject(ctx, project))
	trade := &models.ProjectTrade{ProjectID: project.ID, Name: "Carpentry"}
	require.NoError(t, st.AddProjectTrade(ctx, trade))
	require.NoError(t, st.AddProjectMasterTradesman(ctx, &models.ProjectMasterTradesman{ProjectID: project.ID, UserAccountID: owner.ID, ProjectTradeID: trade.ID}))
	require.NoError(t, st.AddProjectComment(ctx, &models.ProjectComment{ProjectID: project.ID, AuthorID: "gone", Body: "hello"}))

	schema := buildSchema(t)
	result := graphql.Do(graphql.Params{
		Schema: *schema,
		RequestString: `query($id: ID!) { project(id: $id) {
			title status startsAt
			owner { displayName profile { fullName } externalAccounts { id } }
			trades { name }
			comments { body author { id } }
			masterTradesmen { trade { name } tradesman { email } }
			students { id }
		} }`,
		VariableValues: map[string]interface{}{"id": project.ID},
		Context:        store.WithStore(ctx, st),
	})
	require.Empty(t, result.Errors)

	data, err := json.Marshal(result.Data)
	require.NoError(t, err)
	require.JSONEq(t, `{"project":{
		"title":"Timber frame barn","status":"DRAFT","startsAt":null,
		"owner":{"displayName":"Ada","profile":{"fullName":"Ada Lovelace"},"externalAccounts":[]},
		"trades":[{"name":"Carpentry"}],
		"comments":[{"body":"hello","author":null}],
		"masterTradesmen":[{"trade":{"name":"Carpentry"},"tradesman":{"email":"ada@example.com"}}],
		"students":[]
	}}`, string(data))
}

func TestResolveWithoutStore(t *testing.T) {
	schema := buildSchema(t)
	result := graphql.Do(graphql.Params{
		Schema:        *schema,
		RequestString: `{ project(id: "p1") { id } }`,
		Context:       context.Background(),
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, store.ErrNoStore.Error())
}
