package tcp

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/cjl-232/cryptcord-server/config"
	"github.com/cjl-232/cryptcord-server/internal/relay/delivery"
	relayrepository "github.com/cjl-232/cryptcord-server/internal/relay/repository"
	relayusecase "github.com/cjl-232/cryptcord-server/internal/relay/usecase"
	"github.com/cjl-232/cryptcord-server/internal/storage"
	usermodels "github.com/cjl-232/cryptcord-server/internal/user/model"
	userrepository "github.com/cjl-232/cryptcord-server/internal/user/repository"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
)

func startServer(t *testing.T, cfg config.Config) (*Server, *bun.DB) {
	t.Helper()

	if cfg.Bun.Driver == "" {
		cfg.Bun = config.BunConfig{Driver: "sqlite", DSN: storage.MemoryDSN(t.Name())}
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
		cfg.Server.Port = "0"
	}
	if cfg.Server.MaxRequestBytes == 0 {
		cfg.Server.MaxRequestBytes = 4096
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 5
	}

	db, err := storage.Open(&cfg)
	require.NoError(t, err)
	require.NoError(t, storage.Init(t.Context(), db))

	users := userrepository.NewUserRepository(db, logger.Logger{})
	repo := relayrepository.NewRelayRepository(db, logger.Logger{})
	uc := relayusecase.NewRelayUsecase(repo, users, logger.Logger{}, cfg)
	handlers := delivery.NewHandlers(uc, users, logger.Logger{})

	srv := NewServer(handlers, logger.Logger{}, cfg)
	require.NoError(t, srv.Start())
	t.Cleanup(func() {
		srv.Halt()
		db.Close()
	})
	return srv, db
}

// client is a relay peer with its own identity keypair.
type client struct {
	t    *testing.T
	addr string
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func newClient(t *testing.T, srv *Server) *client {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return &client{t: t, addr: srv.Addr().String(), pub: pub, priv: priv}
}

func (c *client) publicKey() string {
	return base64.StdEncoding.EncodeToString(c.pub)
}

type wireResponse struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// send writes raw bytes, half-closes to signal EOF, and decodes the single
// response envelope.
func (c *client) send(raw []byte) wireResponse {
	c.t.Helper()

	conn, err := net.Dial("tcp", c.addr)
	require.NoError(c.t, err)
	defer conn.Close()

	_, err = conn.Write(raw)
	require.NoError(c.t, err)
	require.NoError(c.t, conn.(*net.TCPConn).CloseWrite())

	var resp wireResponse
	require.NoError(c.t, json.NewDecoder(conn).Decode(&resp))
	return resp
}

// do signs data with the client's key and sends it as an envelope.
func (c *client) do(data map[string]any) wireResponse {
	c.t.Helper()

	canonical, err := json.Marshal(data)
	require.NoError(c.t, err)

	envelope, err := json.Marshal(map[string]any{
		"data":       data,
		"public_key": c.publicKey(),
		"signature":  base64.StdEncoding.EncodeToString(ed25519.Sign(c.priv, canonical)),
	})
	require.NoError(c.t, err)
	return c.send(envelope)
}

func (c *client) post(recipient *client, ciphertext string) wireResponse {
	return c.do(map[string]any{
		"action":               "POST_MESSAGE",
		"recipient_public_key": recipient.publicKey(),
		"ciphertext":           ciphertext,
		"signature":            base64.StdEncoding.EncodeToString(ed25519.Sign(c.priv, []byte(ciphertext))),
	})
}

func countUsers(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*usermodels.User)(nil)).Count(t.Context())
	require.NoError(t, err)
	return count
}

func TestServer_PostAndRetrieve(t *testing.T) {
	srv, db := startServer(t, config.Config{})
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	posted := alice.post(bob, "aGVsbG8gYm9i")
	require.Equal(t, 201, posted.Status)
	assert.Equal(t, "Message posted successfully.", posted.Message)

	nonce, _ := posted.Data["nonce"].(string)
	assert.NotEmpty(t, nonce)
	_, err := time.Parse(time.RFC3339Nano, posted.Data["timestamp"].(string))
	require.NoError(t, err)

	// Bob was created on first contact, without ever speaking.
	assert.Equal(t, 2, countUsers(t, db))

	retrieved := bob.do(map[string]any{"action": "RETRIEVE_MESSAGES"})
	require.Equal(t, 200, retrieved.Status)
	assert.Equal(t, "1 messages retrieved.", retrieved.Message)

	messages := retrieved.Data["messages"].([]any)
	require.Len(t, messages, 1)

	m := messages[0].(map[string]any)
	assert.Equal(t, alice.publicKey(), m["sender_public_key"])
	assert.Equal(t, "aGVsbG8gYm9i", m["ciphertext"])
	assert.Equal(t, nonce, m["nonce"])
}

func TestServer_RetrieveFilters(t *testing.T) {
	srv, _ := startServer(t, config.Config{})
	alice := newClient(t, srv)
	carol := newClient(t, srv)
	bob := newClient(t, srv)

	first := alice.post(bob, "from alice 1")
	require.Equal(t, 201, first.Status)
	time.Sleep(2 * time.Millisecond)
	second := carol.post(bob, "from carol")
	require.Equal(t, 201, second.Status)
	time.Sleep(2 * time.Millisecond)
	third := alice.post(bob, "from alice 2")
	require.Equal(t, 201, third.Status)

	t.Run("sender allow-list", func(t *testing.T) {
		resp := bob.do(map[string]any{
			"action":      "RETRIEVE_MESSAGES",
			"sender_keys": []string{alice.publicKey()},
		})
		require.Equal(t, 200, resp.Status)
		assert.Equal(t, "2 messages retrieved.", resp.Message)
	})

	t.Run("min_datetime is inclusive", func(t *testing.T) {
		resp := bob.do(map[string]any{
			"action":       "RETRIEVE_MESSAGES",
			"min_datetime": second.Data["timestamp"],
		})
		require.Equal(t, 200, resp.Status)

		messages := resp.Data["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "from carol", messages[0].(map[string]any)["ciphertext"])
		assert.Equal(t, "from alice 2", messages[1].(map[string]any)["ciphertext"])
	})

	t.Run("combined filters", func(t *testing.T) {
		resp := bob.do(map[string]any{
			"action":       "RETRIEVE_MESSAGES",
			"sender_keys":  []string{alice.publicKey()},
			"min_datetime": second.Data["timestamp"],
		})
		require.Equal(t, 200, resp.Status)

		messages := resp.Data["messages"].([]any)
		require.Len(t, messages, 1)
		assert.Equal(t, "from alice 2", messages[0].(map[string]any)["ciphertext"])
	})
}

func TestServer_RequestTooLarge(t *testing.T) {
	srv, db := startServer(t, config.Config{
		Server: config.Server{MaxRequestBytes: 256},
	})
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	resp := alice.post(bob, strings.Repeat("A", 1024))
	assert.Equal(t, 413, resp.Status)
	assert.Equal(t, "request exceeds the maximum permitted size", resp.Message)

	// Rejected before parsing: no identities were created.
	assert.Equal(t, 0, countUsers(t, db))
}

func TestServer_RequestAtCeilingPasses(t *testing.T) {
	// Build the envelope first, then start a server whose ceiling is its
	// exact size: the bound is inclusive.
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	recipientPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	data := map[string]any{
		"action":               "POST_MESSAGE",
		"recipient_public_key": base64.StdEncoding.EncodeToString(recipientPub),
		"ciphertext":           "cGF5bG9hZA==",
		"signature":            base64.StdEncoding.EncodeToString(ed25519.Sign(priv, []byte("cGF5bG9hZA=="))),
	}
	canonical, err := json.Marshal(data)
	require.NoError(t, err)
	envelope, err := json.Marshal(map[string]any{
		"data":       data,
		"public_key": base64.StdEncoding.EncodeToString(pub),
		"signature":  base64.StdEncoding.EncodeToString(ed25519.Sign(priv, canonical)),
	})
	require.NoError(t, err)

	srv, _ := startServer(t, config.Config{
		Server: config.Server{MaxRequestBytes: int64(len(envelope))},
	})

	c := &client{t: t, addr: srv.Addr().String(), pub: pub, priv: priv}
	resp := c.send(envelope)
	assert.Equal(t, 201, resp.Status)
}

func TestServer_UnlimitedCeiling(t *testing.T) {
	srv, _ := startServer(t, config.Config{
		Server: config.Server{MaxRequestBytes: -1},
	})
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	resp := alice.post(bob, strings.Repeat("A", 64*1024))
	assert.Equal(t, 201, resp.Status)
}

func TestServer_MalformedRequest(t *testing.T) {
	srv, _ := startServer(t, config.Config{})
	c := newClient(t, srv)

	resp := c.send([]byte("this is not json"))
	assert.Equal(t, 400, resp.Status)
}

func TestServer_InvalidSignature(t *testing.T) {
	srv, db := startServer(t, config.Config{})
	c := newClient(t, srv)

	data := map[string]any{"action": "RETRIEVE_MESSAGES"}
	otherData, err := json.Marshal(map[string]any{"action": "POST_MESSAGE"})
	require.NoError(t, err)

	envelope, err := json.Marshal(map[string]any{
		"data":       data,
		"public_key": c.publicKey(),
		"signature":  base64.StdEncoding.EncodeToString(ed25519.Sign(c.priv, otherData)),
	})
	require.NoError(t, err)

	resp := c.send(envelope)
	assert.Equal(t, 401, resp.Status)
	assert.Equal(t, "signature verification failed", resp.Message)

	// An unauthenticated caller leaves no identity behind.
	assert.Equal(t, 0, countUsers(t, db))
}

func TestServer_UnknownAction(t *testing.T) {
	srv, db := startServer(t, config.Config{})
	c := newClient(t, srv)

	resp := c.do(map[string]any{"action": "DELETE_EVERYTHING"})
	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "unrecognised action", resp.Message)

	// The sender authenticated, so its identity row survives the failure.
	assert.Equal(t, 1, countUsers(t, db))
}

func TestServer_SelfSendRejected(t *testing.T) {
	srv, _ := startServer(t, config.Config{})
	alice := newClient(t, srv)

	resp := alice.post(alice, "dGFsa2luZyB0byBteXNlbGY=")
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "sender and recipient must differ", resp.Message)
}

func TestServer_ExchangeKeyFlow(t *testing.T) {
	srv, _ := startServer(t, config.Config{})
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	exchangePub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	exchangeKey := base64.StdEncoding.EncodeToString(exchangePub)

	posted := alice.do(map[string]any{
		"action":               "POST_KEY",
		"recipient_public_key": bob.publicKey(),
		"public_exchange_key":  exchangeKey,
		"signature":            base64.StdEncoding.EncodeToString(ed25519.Sign(alice.priv, exchangePub)),
	})
	require.Equal(t, 201, posted.Status)
	assert.Equal(t, "Key posted.", posted.Message)
	openingNonce := posted.Data["nonce"].(string)

	retrieved := bob.do(map[string]any{"action": "RETRIEVE_KEYS"})
	require.Equal(t, 200, retrieved.Status)
	assert.Equal(t, "1 keys retrieved.", retrieved.Message)

	keys := retrieved.Data["exchange_keys"].([]any)
	require.Len(t, keys, 1)
	k := keys[0].(map[string]any)
	assert.Equal(t, exchangeKey, k["public_exchange_key"])
	assert.Equal(t, alice.publicKey(), k["sender_public_key"])
	_, present := k["response_to"]
	assert.False(t, present)

	answerPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	answerKey := base64.StdEncoding.EncodeToString(answerPub)

	answered := bob.do(map[string]any{
		"action":               "POST_KEY",
		"recipient_public_key": alice.publicKey(),
		"public_exchange_key":  answerKey,
		"signature":            base64.StdEncoding.EncodeToString(ed25519.Sign(bob.priv, answerPub)),
		"response_to":          openingNonce,
	})
	require.Equal(t, 201, answered.Status)

	answers := alice.do(map[string]any{"action": "RETRIEVE_KEYS"})
	require.Equal(t, 200, answers.Status)

	keys = answers.Data["exchange_keys"].([]any)
	require.Len(t, keys, 1)
	assert.Equal(t, openingNonce, keys[0].(map[string]any)["response_to"])
}

func TestServer_ConcurrentFirstContact(t *testing.T) {
	srv, db := startServer(t, config.Config{})

	recipient := newClient(t, srv)

	const senders = 8
	statuses := make(chan int, senders)

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newClient(t, srv)
			statuses <- c.post(recipient, "Y29uY3VycmVudA==").Status
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, 201, status)
	}

	// All senders raced to create the same recipient row; exactly one won.
	assert.Equal(t, senders+1, countUsers(t, db))

	resp := recipient.do(map[string]any{"action": "RETRIEVE_MESSAGES"})
	require.Equal(t, 200, resp.Status)
	assert.Len(t, resp.Data["messages"].([]any), senders)
}

func TestServer_ListenerSurvivesBadRequests(t *testing.T) {
	srv, _ := startServer(t, config.Config{})
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	for _, raw := range []string{"", "not json", `{"data":1}`} {
		resp := alice.send([]byte(raw))
		assert.Equal(t, 400, resp.Status)
	}

	resp := alice.post(bob, "c3RpbGwgYWxpdmU=")
	assert.Equal(t, 201, resp.Status)
}
