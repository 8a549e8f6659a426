package delivery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cjl-232/cryptcord-server/internal/instrument"
	"github.com/cjl-232/cryptcord-server/internal/protocol"
	"github.com/cjl-232/cryptcord-server/internal/relay"
	"github.com/cjl-232/cryptcord-server/internal/user"
	"github.com/cjl-232/cryptcord-server/pkg/errors"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
)

// Surface labels for instrumentation.
const (
	SurfaceTCP  = "tcp"
	SurfaceHTTP = "http"
)

type handlerFunc func(ctx context.Context, senderID int64, data map[string]any) (*protocol.Response, error)

// Handlers runs the request pipeline shared by both surfaces: decode,
// authenticate, resolve the sender identity, then dispatch. The route table
// is closed once constructed.
type Handlers struct {
	relay  relay.RelayUsecase
	users  user.UserRepository
	logger logger.Logger
	routes map[string]handlerFunc
}

func NewHandlers(relayUC relay.RelayUsecase, users user.UserRepository, logger logger.Logger) *Handlers {
	h := &Handlers{relay: relayUC, users: users, logger: logger}
	h.routes = map[string]handlerFunc{
		protocol.ActionPostMessage:      h.postMessage,
		protocol.ActionRetrieveMessages: h.retrieveMessages,
		protocol.ActionPostKey:          h.postExchangeKey,
		protocol.ActionRetrieveKeys:     h.retrieveExchangeKeys,
	}
	return h
}

// Handle serves one raw request whose action is named inside data. Exactly
// one response comes back, whatever happens inside.
func (h *Handlers) Handle(ctx context.Context, surface string, raw []byte) *protocol.Response {
	action, resp := h.process(ctx, raw, "")
	instrument.Request(surface, action, resp.Status)
	return resp
}

// HandleAction serves one raw request whose action is implied by the route
// it arrived on. An action field inside data is ignored.
func (h *Handlers) HandleAction(ctx context.Context, surface, action string, raw []byte) *protocol.Response {
	action, resp := h.process(ctx, raw, action)
	instrument.Request(surface, action, resp.Status)
	return resp
}

// TooLarge answers a request rejected on size before any parsing.
func (h *Handlers) TooLarge(surface string) *protocol.Response {
	resp := errorResponse(errors.ErrRequestTooLarge)
	instrument.Request(surface, "", resp.Status)
	return resp
}

func (h *Handlers) process(ctx context.Context, raw []byte, impliedAction string) (action string, resp *protocol.Response) {
	action = impliedAction
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("handler panic", "action", action, "panic", r)
			resp = protocol.Error(http.StatusInternalServerError, "internal server error")
		}
	}()

	envelope, err := protocol.ParseEnvelope(raw)
	if err != nil {
		return action, errorResponse(err)
	}

	ok, err := envelope.Verify()
	if err != nil {
		h.logger.Error("signature verification error", "err", err)
		return action, protocol.Error(http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return action, errorResponse(errors.ErrInvalidSignature)
	}

	// The sender identity is resolved before dispatch, so a request that
	// fails from here on still leaves its sender row behind.
	sender, err := h.users.ResolveOrCreate(ctx, envelope.PublicKeyText)
	if err != nil {
		h.logger.Error("failed to resolve sender identity", "err", err)
		return action, errorResponse(errors.ErrIdentityResolutionFailed(err))
	}

	if action == "" {
		if action, err = envelope.Action(); err != nil {
			return "", errorResponse(err)
		}
	}

	handler, known := h.routes[action]
	if !known {
		return action, errorResponse(errors.ErrUnknownAction)
	}

	if resp, err = handler(ctx, sender.ID, envelope.Data); err != nil {
		return action, errorResponse(err)
	}
	return action, resp
}

func (h *Handlers) postMessage(ctx context.Context, senderID int64, data map[string]any) (*protocol.Response, error) {
	cmd, err := parsePostMessage(data)
	if err != nil {
		return nil, err
	}
	receipt, err := h.relay.PostMessage(ctx, senderID, cmd)
	if err != nil {
		return nil, err
	}
	return protocol.Created("Message posted successfully.", receiptData(receipt)), nil
}

func (h *Handlers) retrieveMessages(ctx context.Context, senderID int64, data map[string]any) (*protocol.Response, error) {
	cmd, err := parseRetrieve(data)
	if err != nil {
		return nil, err
	}
	messages, err := h.relay.RetrieveMessages(ctx, senderID, cmd)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, messageData(m))
	}
	message := fmt.Sprintf("%d messages retrieved.", len(rows))
	return protocol.OK(message, map[string]any{"messages": rows}), nil
}

func (h *Handlers) postExchangeKey(ctx context.Context, senderID int64, data map[string]any) (*protocol.Response, error) {
	cmd, err := parsePostKey(data)
	if err != nil {
		return nil, err
	}
	receipt, err := h.relay.PostExchangeKey(ctx, senderID, cmd)
	if err != nil {
		return nil, err
	}
	return protocol.Created("Key posted.", receiptData(receipt)), nil
}

func (h *Handlers) retrieveExchangeKeys(ctx context.Context, senderID int64, data map[string]any) (*protocol.Response, error) {
	cmd, err := parseRetrieve(data)
	if err != nil {
		return nil, err
	}
	keys, err := h.relay.RetrieveExchangeKeys(ctx, senderID, cmd)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, exchangeKeyData(k))
	}
	message := fmt.Sprintf("%d keys retrieved.", len(rows))
	return protocol.OK(message, map[string]any{"exchange_keys": rows}), nil
}

func errorResponse(err error) *protocol.Response {
	return protocol.Error(errors.HTTPStatus(err), errors.Message(err))
}
