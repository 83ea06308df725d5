package guild_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/guild"
	"go.appointy.com/guild/jerrors"
	"go.appointy.com/guild/schemabuilder"
)

func testSchema() *graphql.Schema {
	schema := schemabuilder.NewSchema()

	query := schema.Query()
	query.FieldFunc("mirror", func(args struct{ Value int64 }) int64 {
		return args.Value * -1
	})
	query.FieldFunc("missing", func() (*string, error) {
		return nil, jerrors.New(jerrors.NotFound, "nothing here")
	})
	query.FieldFunc("variableNames", func(ctx context.Context) []string {
		var names []string
		for name := range guild.ExtractVariables(ctx) {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	})

	schema.Subscription().FieldFunc("countdown", func(ctx context.Context, args struct{ From int32 }) <-chan int32 {
		ch := make(chan int32)
		go func() {
			defer close(ch)
			for i := args.From; i > 0; i-- {
				select {
				case ch <- i:
				case <-ctx.Done():
					return
				}
			}
		}()
		return ch
	})

	return schema.MustBuild()
}

func testHTTPRequest(req *http.Request, opts ...guild.HandlerOption) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	guild.HTTPHandler(testSchema(), opts...).ServeHTTP(rr, req)
	return rr
}

func postQuery(t *testing.T, body string, opts ...guild.HandlerOption) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	require.NoError(t, err)
	return testHTTPRequest(req, opts...)
}

func TestHTTPMustHaveBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "/graphql", nil)
	require.NoError(t, err)

	rr := testHTTPRequest(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"request must include a query","extensions":{"code":"InvalidArgument"},"paths":[]}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPMustHaveQuery(t *testing.T) {
	rr := postQuery(t, `{"query":""}`)
	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"must have a single query","extensions":{"code":"InvalidArgument"},"paths":[]}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPBadJSON(t *testing.T) {
	rr := postQuery(t, `{"query":`)

	var resp struct {
		Data   interface{}
		Errors []*jerrors.Error
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, jerrors.InvalidArgument, resp.Errors[0].Code())
}

func TestHTTPSuccess(t *testing.T) {
	rr := postQuery(t, `{"query": "query TestQuery($value: Int!) { mirror(value: $value) }", "variables": { "value": 1 }}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	if diff := pretty.Compare(rr.Body.String(), `{"data":{"mirror":-1},"errors":null}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
	if diff := pretty.Compare(rr.Header().Get("Content-Type"), "application/json"); diff != "" {
		t.Errorf("expected content type to match, but received %s", diff)
	}
}

func TestHTTPOperationName(t *testing.T) {
	rr := postQuery(t, `{"query": "query A { mirror(value: 1) } query B { mirror(value: 2) }", "operationName": "B"}`)
	if diff := pretty.Compare(rr.Body.String(), `{"data":{"mirror":-2},"errors":null}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPResolverErrorCode(t *testing.T) {
	rr := postQuery(t, `{"query": "{ missing }"}`)

	var resp struct {
		Data   map[string]interface{}
		Errors []*jerrors.Error
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "nothing here", resp.Errors[0].Message)
	assert.Equal(t, jerrors.NotFound, resp.Errors[0].Code())
	assert.Equal(t, []interface{}{"missing"}, resp.Errors[0].Paths)
	assert.Nil(t, resp.Data["missing"])
}

func TestHTTPRejectsSubscription(t *testing.T) {
	rr := postQuery(t, `{"query": "subscription { countdown(from: 1) }"}`)
	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"subscriptions require a websocket connection","extensions":{"code":"InvalidArgument"},"paths":[]}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPMiddlewares(t *testing.T) {
	var order []string
	record := func(name string) guild.MiddlewareFunc {
		return func(next guild.HandlerFunc) guild.HandlerFunc {
			return func(ctx context.Context, params graphql.Params) *graphql.Result {
				order = append(order, name)
				return next(ctx, params)
			}
		}
	}

	rr := postQuery(t, `{"query": "query($a: Int!, $b: Int!) { variableNames m1: mirror(value: $a) m2: mirror(value: $b) }", "variables": {"b": 1, "a": 2}}`,
		guild.WithMiddlewares(record("outer"), record("inner")))

	assert.Equal(t, []string{"outer", "inner"}, order)
	if diff := pretty.Compare(rr.Body.String(), `{"data":{"m1":-2,"m2":-1,"variableNames":["a","b"]},"errors":null}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	postQuery(t, `{"query": "query Mirror { mirror(value: 3) }", "operationName": "Mirror"}`,
		guild.WithLogger(logger), guild.WithMiddlewares(guild.LoggingMiddleware))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "graphql operation", line["msg"])
	assert.Equal(t, "Mirror", line["operation"])
	assert.Equal(t, "/graphql", line["path"])
	assert.EqualValues(t, 0, line["errors"])
}

func TestHTTPPlayground(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/graphql", nil)
	require.NoError(t, err)

	rr := testHTTPRequest(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<title>Guild Playground</title>")
	assert.Contains(t, rr.Body.String(), `var endpoint = "/graphql";`)

	rr = testHTTPRequest(req, guild.WithPlayground(false))
	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"request must be a POST","extensions":{"code":"InvalidArgument"},"paths":[]}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestPlaygroundHandler(t *testing.T) {
	h := guild.PlaygroundHandler("<Guild>", "/api")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rr.Body.String(), "<title>&lt;Guild&gt;</title>")
	assert.Contains(t, rr.Body.String(), `var endpoint = "/api";`)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, rr.Body.Len())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
