package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
)

type tokenAuth map[string]string

func (a tokenAuth) Verify(token string) (string, error) {
	if id, ok := a[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

// memorySender 持久化到内存并交给 Coordinator 推送
type memorySender struct {
	mu    sync.Mutex
	coord *Coordinator
	sent  []*model.Message
}

func (s *memorySender) Post(_ context.Context, conversationID, senderID, receiverID, text string) (*model.Message, error) {
	if conversationID == "missing" {
		return nil, apperr.New(apperr.NotFound, "conversation not found")
	}
	msg := &model.Message{ID: model.NewID(), ConversationID: conversationID, SenderID: senderID, ReceiverID: receiverID, Text: text, CreatedAt: time.Now()}
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.coord.DeliverMessage(senderID, receiverID, msg, nil)
	return msg, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *Coordinator, *memorySender) {
	t.Helper()
	coord := NewCoordinator(nil)
	sender := &memorySender{coord: coord}
	auth := tokenAuth{"tok-alice": "alice", "tok-bob": "bob"}
	srv := httptest.NewServer(NewHandler(coord, sender, auth, TransportOptions{}))
	t.Cleanup(srv.Close)
	return srv, coord, sender
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ, requestID string, payload any) {
	t.Helper()
	frame := wsFrame{Type: typ, RequestID: requestID}
	if payload != nil {
		frame.Payload = mustJSON(payload)
	}
	require.NoError(t, json.NewEncoder(conn).Encode(frame))
}

// readUntil 读取直到出现指定类型的帧
func readUntil(t *testing.T, dec *json.Decoder, typ string) wsFrame {
	t.Helper()
	for {
		var f wsFrame
		require.NoError(t, dec.Decode(&f))
		if f.Type == typ {
			return f
		}
	}
}

func TestHandshakeRequiresToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, err = websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token=nope", "", srv.URL)
	assert.Error(t, err)
}

func TestConnectSendAndDisconnect(t *testing.T) {
	srv, coord, sender := newTestServer(t)

	alice := dial(t, srv, "tok-alice")
	aliceDec := json.NewDecoder(alice)
	send(t, alice, EventConnect, "r1", connectPayload{UserID: "alice"})
	online := readUntil(t, aliceDec, EventOnlineUsersChanged)
	var entries []Entry
	require.NoError(t, json.Unmarshal(online.Payload, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)
	ack := readUntil(t, aliceDec, EventAck)
	assert.Equal(t, "r1", ack.RequestID)
	var ca connectAck
	require.NoError(t, json.Unmarshal(ack.Payload, &ca))
	assert.True(t, ca.Registered)
	assert.NotEmpty(t, ca.SocketID)

	bob := dial(t, srv, "tok-bob")
	bobDec := json.NewDecoder(bob)
	send(t, bob, EventConnect, "r2", nil)
	readUntil(t, bobDec, EventAck)
	online = readUntil(t, aliceDec, EventOnlineUsersChanged)
	require.NoError(t, json.Unmarshal(online.Payload, &entries))
	assert.Len(t, entries, 2)

	send(t, alice, EventSendMessage, "r3", sendMessagePayload{ConversationID: "cv1", ReceiverID: "bob", Text: "hi bob"})
	got := readUntil(t, bobDec, EventMessageReceived)
	var msg model.Message
	require.NoError(t, json.Unmarshal(got.Payload, &msg))
	assert.Equal(t, "hi bob", msg.Text)
	assert.Equal(t, "alice", msg.SenderID)
	readUntil(t, bobDec, EventLatestMessageUpdated)
	readUntil(t, aliceDec, EventLatestMessageUpdated)
	ack = readUntil(t, aliceDec, EventAck)
	assert.Equal(t, "r3", ack.RequestID)

	sender.mu.Lock()
	assert.Len(t, sender.sent, 1)
	sender.mu.Unlock()

	send(t, bob, EventDisconnect, "r4", nil)
	readUntil(t, bobDec, EventAck)
	online = readUntil(t, aliceDec, EventOnlineUsersChanged)
	require.NoError(t, json.Unmarshal(online.Payload, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)

	// 下线只广播一次：以一个未知帧的错误回复作为分界
	send(t, alice, "ping", "r5", nil)
	for {
		var f wsFrame
		require.NoError(t, aliceDec.Decode(&f))
		if f.Type == EventError {
			assert.Equal(t, "r5", f.RequestID)
			break
		}
		assert.NotEqual(t, EventOnlineUsersChanged, f.Type, "disconnect broadcast twice")
	}

	assert.Eventually(t, func() bool {
		_, ok := coord.Presence().Conn("bob")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestFramesCannotImpersonate(t *testing.T) {
	srv, _, sender := newTestServer(t)
	alice := dial(t, srv, "tok-alice")
	dec := json.NewDecoder(alice)

	send(t, alice, EventConnect, "r1", connectPayload{UserID: "bob"})
	f := readUntil(t, dec, EventError)
	assert.Equal(t, "r1", f.RequestID)

	send(t, alice, EventSendMessage, "r2", sendMessagePayload{ConversationID: "cv", SenderID: "bob", Text: "x"})
	f = readUntil(t, dec, EventError)
	var e wsError
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "PERMISSION_DENIED", e.Code)

	send(t, alice, EventSendMessage, "r3", sendMessagePayload{ConversationID: "missing", Text: "x"})
	f = readUntil(t, dec, EventError)
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)

	sender.mu.Lock()
	assert.Empty(t, sender.sent)
	sender.mu.Unlock()
}

func TestClosingSocketUnregisters(t *testing.T) {
	srv, coord, _ := newTestServer(t)
	alice := dial(t, srv, "tok-alice")
	send(t, alice, EventConnect, "r1", nil)
	readUntil(t, json.NewDecoder(alice), EventAck)
	require.Eventually(t, func() bool { return coord.Presence().Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, alice.Close())
	assert.Eventually(t, func() bool { return coord.Presence().Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBadFrameDoesNotPoisonConnection(t *testing.T) {
	srv, coord, _ := newTestServer(t)
	alice := dial(t, srv, "tok-alice")
	dec := json.NewDecoder(alice)

	_, err := alice.Write([]byte("{not json"))
	require.NoError(t, err)
	f := readUntil(t, dec, EventError)
	var e wsError
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "invalid frame payload", e.Message)

	send(t, alice, EventConnect, "r1", nil)
	ack := readUntil(t, dec, EventAck)
	assert.Equal(t, "r1", ack.RequestID)
	_, ok := coord.Presence().Conn("alice")
	assert.True(t, ok)
}

func TestOversizedFrameIsRejectedAndSkipped(t *testing.T) {
	coord := NewCoordinator(nil)
	sender := &memorySender{coord: coord}
	srv := httptest.NewServer(NewHandler(coord, sender, tokenAuth{"tok-alice": "alice"}, TransportOptions{MaxPayloadBytes: 256}))
	t.Cleanup(srv.Close)

	alice := dial(t, srv, "tok-alice")
	dec := json.NewDecoder(alice)

	send(t, alice, EventSendMessage, "big", sendMessagePayload{ConversationID: "cv", Text: strings.Repeat("x", 1024)})
	f := readUntil(t, dec, EventError)
	var e wsError
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "payload too large", e.Message)

	send(t, alice, EventConnect, "r1", nil)
	ack := readUntil(t, dec, EventAck)
	assert.Equal(t, "r1", ack.RequestID)

	sender.mu.Lock()
	assert.Empty(t, sender.sent)
	sender.mu.Unlock()
}

func TestSecondConnectionIsNotRegistered(t *testing.T) {
	srv, coord, _ := newTestServer(t)

	first := dial(t, srv, "tok-alice")
	send(t, first, EventConnect, "r1", nil)
	readUntil(t, json.NewDecoder(first), EventAck)

	second := dial(t, srv, "tok-alice")
	send(t, second, EventConnect, "r2", nil)
	ack := readUntil(t, json.NewDecoder(second), EventAck)
	var ca connectAck
	require.NoError(t, json.Unmarshal(ack.Payload, &ca))
	assert.False(t, ca.Registered)

	conn, ok := coord.Presence().Conn("alice")
	require.True(t, ok)
	assert.NotEqual(t, ca.SocketID, conn)
}
