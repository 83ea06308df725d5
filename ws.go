package guild

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"go.appointy.com/guild/internal/ctxlog"
	"go.appointy.com/guild/jerrors"
)

// Subprotocol is the websocket subprotocol spoken by SubscriptionHandler.
const Subprotocol = "graphql-transport-ws"

const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

// Close codes defined by graphql-transport-ws.
const (
	closeBadRequest   = 4400
	closeUnauthorized = 4401
	closeInitTimeout  = 4408
	closeDuplicateID  = 4409
	closeTooManyInits = 4429
)

const writeWait = 10 * time.Second

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type executionResult struct {
	Data   interface{}      `json:"data"`
	Errors []*jerrors.Error `json:"errors,omitempty"`
}

var upgrader = websocket.Upgrader{
	Subprotocols: []string{Subprotocol},
}

// SubscriptionHandler serves GraphQL over websockets. Subscriptions stream a
// next message per event; queries and mutations get a single next message.
// Each operation ends with complete unless the client completed it first.
func SubscriptionHandler(schema *graphql.Schema, opts ...HandlerOption) http.Handler {
	return &wsHandler{handler: newHandler(schema, opts)}
}

type wsHandler struct {
	*handler
}

func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := h.requestContext(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &wsConn{
		handler: h.handler,
		conn:    conn,
		ctx:     ctx,
		cancel:  cancel,
		logger:  ctxlog.FromContext(ctx),
		ops:     make(map[string]context.CancelFunc),
	}
	c.serve()
}

type wsConn struct {
	*handler

	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	writeMu sync.Mutex

	mu     sync.Mutex
	inited bool
	ops    map[string]context.CancelFunc
	wg     sync.WaitGroup
}

func (c *wsConn) serve() {
	defer func() {
		c.cancel()
		c.wg.Wait()
		_ = c.conn.Close()
	}()

	// The request context ends with the server; a cancelled context closes
	// the socket so the read loop below returns.
	stop := context.AfterFunc(c.ctx, func() {
		c.close(websocket.CloseGoingAway, "Server shutting down")
	})
	defer stop()

	timer := time.AfterFunc(c.opts.initTimeout, func() {
		c.mu.Lock()
		inited := c.inited
		c.mu.Unlock()
		if !inited {
			c.close(closeInitTimeout, "Connection initialisation timeout")
		}
	})
	defer timer.Stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.close(closeBadRequest, "Invalid message received")
			return
		}
		if !c.handle(msg) {
			return
		}
	}
}

// handle processes one client message and reports whether the connection
// stays open.
func (c *wsConn) handle(msg wsMessage) bool {
	switch msg.Type {
	case msgConnectionInit:
		c.mu.Lock()
		again := c.inited
		c.inited = true
		c.mu.Unlock()
		if again {
			c.close(closeTooManyInits, "Too many initialisation requests")
			return false
		}
		c.write(wsMessage{Type: msgConnectionAck})

	case msgPing:
		c.write(wsMessage{Type: msgPong})

	case msgPong:

	case msgSubscribe:
		c.mu.Lock()
		inited := c.inited
		c.mu.Unlock()
		if !inited {
			c.close(closeUnauthorized, "Unauthorized")
			return false
		}
		if msg.ID == "" {
			c.close(closeBadRequest, "Subscribe message requires an id")
			return false
		}

		var body requestBody
		if err := json.Unmarshal(msg.Payload, &body); err != nil || body.Query == "" {
			c.close(closeBadRequest, "Invalid subscribe payload")
			return false
		}

		c.mu.Lock()
		if _, ok := c.ops[msg.ID]; ok {
			c.mu.Unlock()
			c.close(closeDuplicateID, "Subscriber for "+msg.ID+" already exists")
			return false
		}
		ctx, cancel := context.WithCancel(c.ctx)
		c.ops[msg.ID] = cancel
		c.mu.Unlock()

		c.wg.Add(1)
		go c.run(ctx, msg.ID, body)

	case msgComplete:
		c.finish(msg.ID)

	default:
		c.close(closeBadRequest, "Unknown message type "+msg.Type)
		return false
	}

	return true
}

func (c *wsConn) run(ctx context.Context, id string, body requestBody) {
	defer c.wg.Done()
	defer c.finish(id)

	ctx = addVariables(ctx, body.Variables)
	params := c.params(ctx, body)

	if operationKind(body.Query, body.OperationName) != ast.OperationTypeSubscription {
		result := c.exec(ctx, params)
		if ctx.Err() != nil {
			return
		}
		c.send(id, result, true)
		return
	}

	results := graphql.Subscribe(params)
	first := true
	for {
		select {
		case <-ctx.Done():
			go func() {
				for range results {
				}
			}()
			return

		case result, ok := <-results:
			if !ok {
				c.write(wsMessage{ID: id, Type: msgComplete})
				return
			}
			if first && result.Data == nil && len(result.Errors) > 0 {
				c.writePayload(id, msgError, jerrors.FromFormatted(result.Errors))
				return
			}
			first = false
			c.send(id, result, false)
		}
	}
}

// send writes result as a next message, followed by complete if last.
func (c *wsConn) send(id string, result *graphql.Result, last bool) {
	c.writePayload(id, msgNext, executionResult{
		Data:   result.Data,
		Errors: jerrors.FromFormatted(result.Errors),
	})
	if last {
		c.write(wsMessage{ID: id, Type: msgComplete})
	}
}

// finish stops operation id if it is still running.
func (c *wsConn) finish(id string) {
	c.mu.Lock()
	cancel, ok := c.ops[id]
	delete(c.ops, id)
	c.mu.Unlock()

	if ok {
		cancel()
	}
}

func (c *wsConn) writePayload(id, typ string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("encoding websocket payload", "type", typ, "error", err)
		return
	}
	c.write(wsMessage{ID: id, Type: typ, Payload: raw})
}

func (c *wsConn) write(msg wsMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug("websocket write failed", "type", msg.Type, "error", err)
	}
}

// close sends a close frame and tears the connection down, which unblocks
// the read loop.
func (c *wsConn) close(code int, reason string) {
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	_ = c.conn.Close()
}
