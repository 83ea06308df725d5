// Package guild serves a graphql-go schema over HTTP, with subscriptions
// over websockets and an optional GraphiQL playground.
package guild

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"go.appointy.com/guild/internal/ctxlog"
	"go.appointy.com/guild/jerrors"
)

// HandlerFunc executes a single GraphQL operation.
type HandlerFunc func(ctx context.Context, params graphql.Params) *graphql.Result

// MiddlewareFunc wraps the execution of every query and mutation.
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	middlewares     []MiddlewareFunc
	logger          *slog.Logger
	playground      bool
	playgroundTitle string
	initTimeout     time.Duration
}

func defaultOptions() handlerOptions {
	return handlerOptions{
		playground:      true,
		playgroundTitle: "Guild Playground",
		initTimeout:     10 * time.Second,
	}
}

// WithMiddlewares adds middlewares around execution. The first one given is
// the outermost.
func WithMiddlewares(middlewares ...MiddlewareFunc) HandlerOption {
	return func(o *handlerOptions) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithLogger attaches logger, annotated with the request method and path,
// to every request context.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.logger = logger
	}
}

// WithPlayground toggles serving GraphiQL on GET requests.
func WithPlayground(enabled bool) HandlerOption {
	return func(o *handlerOptions) {
		o.playground = enabled
	}
}

// WithConnectionInitTimeout bounds how long a websocket client may wait
// before sending connection_init.
func WithConnectionInitTimeout(d time.Duration) HandlerOption {
	return func(o *handlerOptions) {
		o.initTimeout = d
	}
}

type handler struct {
	schema *graphql.Schema
	opts   handlerOptions
	exec   HandlerFunc
}

func newHandler(schema *graphql.Schema, opts []HandlerOption) *handler {
	h := &handler{schema: schema, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&h.opts)
	}

	prev := h.execute
	for i := range h.opts.middlewares {
		prev = h.opts.middlewares[len(h.opts.middlewares)-1-i](prev)
	}
	h.exec = prev

	return h
}

func (h *handler) execute(ctx context.Context, params graphql.Params) *graphql.Result {
	params.Context = ctx
	return graphql.Do(params)
}

func (h *handler) params(ctx context.Context, body requestBody) graphql.Params {
	return graphql.Params{
		Schema:         *h.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		OperationName:  body.OperationName,
		Context:        ctx,
	}
}

func (h *handler) requestContext(r *http.Request) context.Context {
	ctx := r.Context()
	if h.opts.logger != nil {
		ctx = ctxlog.WithLogger(ctx, h.opts.logger.With("method", r.Method, "path", r.URL.Path))
	}
	return ctx
}

// HTTPHandler executes queries and mutations POSTed as JSON. Websocket
// upgrades are handed to the subscription transport and GET requests serve
// the playground unless disabled.
func HTTPHandler(schema *graphql.Schema, opts ...HandlerOption) http.Handler {
	h := newHandler(schema, opts)
	return &httpHandler{
		handler:       h,
		subscriptions: &wsHandler{handler: h},
	}
}

type httpHandler struct {
	*handler

	subscriptions *wsHandler
}

type requestBody struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type httpResponse struct {
	Data   interface{}      `json:"data"`
	Errors []*jerrors.Error `json:"errors"`
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeResponse := func(value interface{}, errs []*jerrors.Error) {
		responseJSON, err := json.Marshal(httpResponse{Data: value, Errors: errs})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		_, _ = w.Write(responseJSON)
	}
	fail := func(err error) {
		writeResponse(nil, []*jerrors.Error{jerrors.ConvertError(err)})
	}

	if websocket.IsWebSocketUpgrade(r) {
		h.subscriptions.ServeHTTP(w, r)
		return
	}

	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if h.opts.playground {
			PlaygroundHandler(h.opts.playgroundTitle, r.URL.Path).ServeHTTP(w, r)
			return
		}
	}

	if r.Method != http.MethodPost {
		fail(jerrors.New(jerrors.InvalidArgument, "request must be a POST"))
		return
	}

	if r.Body == nil || r.Body == http.NoBody {
		fail(jerrors.New(jerrors.InvalidArgument, "request must include a query"))
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(jerrors.New(jerrors.InvalidArgument, "decoding request: %v", err))
		return
	}
	if body.Query == "" {
		fail(jerrors.New(jerrors.InvalidArgument, "must have a single query"))
		return
	}

	if operationKind(body.Query, body.OperationName) == ast.OperationTypeSubscription {
		fail(jerrors.New(jerrors.InvalidArgument, "subscriptions require a websocket connection"))
		return
	}

	ctx := addVariables(h.requestContext(r), body.Variables)
	result := h.exec(ctx, h.params(ctx, body))
	writeResponse(result.Data, jerrors.FromFormatted(result.Errors))
}

// operationKind returns the type of the operation that would run for query,
// or "" if the document does not parse or the operation is ambiguous. Parse
// errors are left for execution to report.
func operationKind(query, operationName string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return ""
	}

	var found *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if found != nil {
				return ""
			}
			found = op
			continue
		}
		if op.Name != nil && op.Name.Value == operationName {
			found = op
			break
		}
	}

	if found == nil {
		return ""
	}
	return found.Operation
}

type graphqlVariableKeyType int

const graphqlVariableKey graphqlVariableKeyType = 0

// ExtractVariables is used to returns the variables received as part of the graphql request.
// This is intended to be used from within the interceptors.
func ExtractVariables(ctx context.Context) map[string]interface{} {
	if v := ctx.Value(graphqlVariableKey); v != nil {
		return v.(map[string]interface{})
	}

	return nil
}

func addVariables(ctx context.Context, v map[string]interface{}) context.Context {
	return context.WithValue(ctx, graphqlVariableKey, v)
}
