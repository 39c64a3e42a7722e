package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

const (
	defaultMaxFramesPerSecond = 30
	defaultMaxPayloadBytes    = 16 * 1024
	maxDecodeErrorsPerConn    = 3
	sendTimeout               = 10 * time.Second
)

// MessageSender 持久化一条消息（随后由 Coordinator 推送）
type MessageSender interface {
	Post(ctx context.Context, conversationID, senderID, receiverID, text string) (*model.Message, error)
}

// Authenticator 把访问令牌解析为用户 ID
type Authenticator interface {
	Verify(token string) (string, error)
}

type TransportOptions struct {
	MaxFramesPerSecond int
	MaxPayloadBytes    int64
}

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type connectPayload struct {
	UserID string `json:"user_id"`
}

// connectAck Registered 为 false 表示该用户已在其他连接上线
type connectAck struct {
	SocketID   string `json:"socket_id"`
	Registered bool   `json:"registered"`
}

type sendMessagePayload struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id"`
	Text           string `json:"text"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsPeer 串行化同一连接上的写
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

func (p *wsPeer) Send(event string, payload any) error {
	return p.writeFrame(wsFrame{Type: event, Payload: mustJSON(payload)})
}

type wsUserIDContextKey struct{}

// NewHandler GET /ws：握手前校验令牌，随后按帧处理 connect / sendMessage / disconnect
func NewHandler(coord *Coordinator, sender MessageSender, authn Authenticator, opts TransportOptions) http.Handler {
	if opts.MaxFramesPerSecond <= 0 {
		opts.MaxFramesPerSecond = defaultMaxFramesPerSecond
	}
	if opts.MaxPayloadBytes <= 0 {
		opts.MaxPayloadBytes = defaultMaxPayloadBytes
	}

	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, coord, sender, opts)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		token := accessTokenFromRequest(r)
		if token == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		userID, err := authn.Verify(token)
		if err != nil || strings.TrimSpace(userID) == "" {
			logger.Debug("websocket unauthorized", zap.String("remote", r.RemoteAddr), zap.Error(err))
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), wsUserIDContextKey{}, userID))
		wsHandler.ServeHTTP(w, r)
	})
}

func accessTokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if t := strings.TrimSpace(r.URL.Query().Get("token")); t != "" {
		return t
	}
	if c, err := r.Cookie("token"); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

type wsSession struct {
	connID string
	userID string
	peer   *wsPeer
}

func handleWSConn(conn *websocket.Conn, coord *Coordinator, sender MessageSender, opts TransportOptions) {
	defer func() {
		_ = conn.Close()
	}()

	ctx := conn.Request().Context()
	userID, _ := ctx.Value(wsUserIDContextKey{}).(string)
	session := &wsSession{
		connID: model.NewID(),
		userID: userID,
		peer:   newWSPeer(json.NewEncoder(conn)),
	}

	coord.Attach(session.connID, session.peer)
	defer func() {
		coord.Detach(session.connID)
		coord.UnregisterConnection(session.connID)
	}()

	conn.MaxPayloadBytes = int(opts.MaxPayloadBytes)
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if !errors.Is(err, websocket.ErrFrameTooLarge) {
				if !errors.Is(err, io.EOF) {
					logger.Debug("websocket read", zap.String("conn", session.connID), zap.Error(err))
				}
				return
			}
			// 超长帧在下次读取时丢弃，连接继续可用
			decodeErrors++
			_ = writeWSError(session.peer, "", "INVALID_ARGUMENT", "payload too large")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}

		var frame wsFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			decodeErrors++
			_ = writeWSError(session.peer, "", "INVALID_ARGUMENT", "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > opts.MaxFramesPerSecond {
			_ = writeWSError(session.peer, frame.RequestID, "RESOURCE_EXHAUSTED", "rate limit exceeded")
			return
		}

		switch frame.Type {
		case EventConnect:
			handleConnectFrame(session, coord, frame)
		case EventSendMessage:
			handleSendFrame(ctx, session, sender, frame)
		case EventDisconnect:
			// 下线与广播交给 defer 中的清理
			_ = writeAck(session.peer, frame.RequestID, nil)
			return
		default:
			_ = writeWSError(session.peer, frame.RequestID, "INVALID_ARGUMENT", "unsupported frame type")
		}
	}
}

func handleConnectFrame(session *wsSession, coord *Coordinator, frame wsFrame) {
	var payload connectPayload
	if len(frame.Payload) > 0 {
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			_ = writeWSError(session.peer, frame.RequestID, "INVALID_ARGUMENT", "invalid connect payload")
			return
		}
	}
	if id := strings.TrimSpace(payload.UserID); id != "" && id != session.userID {
		_ = writeWSError(session.peer, frame.RequestID, "PERMISSION_DENIED", "user_id does not match the authenticated user")
		return
	}
	registered := coord.RegisterConnection(session.userID, session.connID)
	_ = writeAck(session.peer, frame.RequestID, connectAck{SocketID: session.connID, Registered: registered})
}

func handleSendFrame(ctx context.Context, session *wsSession, sender MessageSender, frame wsFrame) {
	var payload sendMessagePayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, "INVALID_ARGUMENT", "invalid sendMessage payload")
		return
	}
	if id := strings.TrimSpace(payload.SenderID); id != "" && id != session.userID {
		_ = writeWSError(session.peer, frame.RequestID, "PERMISSION_DENIED", "sender_id does not match the authenticated user")
		return
	}
	if strings.TrimSpace(payload.ConversationID) == "" {
		_ = writeWSError(session.peer, frame.RequestID, "INVALID_ARGUMENT", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	msg, err := sender.Post(ctx, payload.ConversationID, session.userID, strings.TrimSpace(payload.ReceiverID), payload.Text)
	if err != nil {
		_ = writeWSError(session.peer, frame.RequestID, errorCode(err), apperr.PublicMessage(err))
		return
	}
	_ = writeAck(session.peer, frame.RequestID, msg)
}

func errorCode(err error) string {
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		return "NOT_FOUND"
	case apperr.InvalidOperation, apperr.InvalidState, apperr.AlreadyExists, apperr.ValidationFailed:
		return "INVALID_ARGUMENT"
	case apperr.Unauthorized:
		return "UNAUTHENTICATED"
	default:
		return "INTERNAL"
	}
}

func writeAck(peer *wsPeer, requestID string, payload any) error {
	frame := wsFrame{Type: EventAck, RequestID: requestID}
	if payload != nil {
		frame.Payload = mustJSON(payload)
	}
	return peer.writeFrame(frame)
}

func writeWSError(peer *wsPeer, requestID, code, message string) error {
	return peer.writeFrame(wsFrame{
		Type:      EventError,
		RequestID: requestID,
		Payload:   mustJSON(wsError{Code: code, Message: message}),
	})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
