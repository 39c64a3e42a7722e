package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/metrics"
)

const (
	EventConnect              = "connect"
	EventSendMessage          = "sendMessage"
	EventDisconnect           = "disconnect"
	EventOnlineUsersChanged   = "onlineUsersChanged"
	EventMessageReceived      = "messageReceived"
	EventLatestMessageUpdated = "latestMessageUpdated"
	EventAck                  = "ack"
	EventError                = "error"
)

// Peer 一条实时连接的写端
type Peer interface {
	Send(event string, payload any) error
}

// LatestMessage latestMessageUpdated 事件负载
type LatestMessage struct {
	ConversationID string    `json:"conversation_id"`
	LatestMessage  string    `json:"latest_message"`
	SenderID       string    `json:"sender_id"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Coordinator 维护在线状态并向连接推送事件，与消息持久化相互独立
type Coordinator struct {
	presence *Presence

	mu    sync.RWMutex
	peers map[string]Peer

	dispatch *dispatcher
}

func NewCoordinator(presence *Presence) *Coordinator {
	if presence == nil {
		presence = NewPresence()
	}
	return &Coordinator{presence: presence, peers: make(map[string]Peer)}
}

// StartAsync 切换为异步推送，返回停止函数；未调用时在调用方协程内直接写
func (c *Coordinator) StartAsync(workers, queueSize int) func(context.Context) error {
	d := newDispatcher(workers, queueSize)
	stop := d.start()
	c.mu.Lock()
	c.dispatch = d
	c.mu.Unlock()
	return func(ctx context.Context) error {
		c.mu.Lock()
		c.dispatch = nil
		c.mu.Unlock()
		return stop(ctx)
	}
}

func (c *Coordinator) Presence() *Presence { return c.presence }

// Attach 连接建立即加入广播集合，尚未 connect 的连接也会收到在线列表
func (c *Coordinator) Attach(connID string, peer Peer) {
	c.mu.Lock()
	c.peers[connID] = peer
	c.mu.Unlock()
}

func (c *Coordinator) Detach(connID string) {
	c.mu.Lock()
	delete(c.peers, connID)
	c.mu.Unlock()
}

// RegisterConnection 用户上线（先到先得），并向所有连接广播在线列表；
// 返回该连接是否成为用户的在线连接
func (c *Coordinator) RegisterConnection(userID, connID string) bool {
	c.presence.Register(userID, connID)
	current, _ := c.presence.Conn(userID)
	c.broadcastOnline()
	return current == connID
}

// UnregisterConnection 移除该连接对应的在线条目并广播
func (c *Coordinator) UnregisterConnection(connID string) {
	c.presence.Unregister(connID)
	c.broadcastOnline()
}

// DeliverMessage 接收方在线时推送 messageReceived，并向双方推送 latestMessageUpdated；
// 接收方不在线则直接跳过
func (c *Coordinator) DeliverMessage(senderID, receiverID string, msg *model.Message, convo *model.Conversation) {
	receiverConn, ok := c.presence.Conn(receiverID)
	if !ok {
		return
	}
	c.push(receiverConn, EventMessageReceived, msg)

	latest := LatestMessage{
		ConversationID: msg.ConversationID,
		LatestMessage:  msg.Text,
		SenderID:       senderID,
		UpdatedAt:      msg.CreatedAt,
	}
	if convo != nil && convo.LatestMessage != nil {
		latest.LatestMessage = *convo.LatestMessage
		latest.UpdatedAt = convo.UpdatedAt
	}
	c.push(receiverConn, EventLatestMessageUpdated, latest)
	if senderConn, ok := c.presence.Conn(senderID); ok {
		c.push(senderConn, EventLatestMessageUpdated, latest)
	}
}

func (c *Coordinator) broadcastOnline() {
	online := c.presence.Online()
	metrics.OnlineUsers.Set(float64(len(online)))

	c.mu.RLock()
	targets := make(map[string]Peer, len(c.peers))
	for id, p := range c.peers {
		targets[id] = p
	}
	c.mu.RUnlock()

	for connID, p := range targets {
		c.pushTo(connID, p, EventOnlineUsersChanged, online)
	}
}

func (c *Coordinator) push(connID, event string, payload any) {
	c.mu.RLock()
	p, ok := c.peers[connID]
	c.mu.RUnlock()
	if !ok {
		return
	}
	c.pushTo(connID, p, event, payload)
}

func (c *Coordinator) pushTo(connID string, p Peer, event string, payload any) {
	metrics.RealtimeEvents.WithLabelValues(event).Inc()
	c.mu.RLock()
	d := c.dispatch
	c.mu.RUnlock()
	job := pushJob{peer: p, connID: connID, event: event, payload: payload}
	if d != nil {
		d.enqueue(job)
		return
	}
	sendNow(job)
}
