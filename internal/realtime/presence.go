package realtime

import (
	"sort"
	"sync"
)

// Presence 在线用户表：每个用户至多一条连接，先注册者生效直到被移除
type Presence struct {
	mu     sync.RWMutex
	byUser map[string]string
	byConn map[string]string
}

func NewPresence() *Presence {
	return &Presence{byUser: make(map[string]string), byConn: make(map[string]string)}
}

// Register 用户已在线时不做任何修改，返回是否新增
func (p *Presence) Register(userID, connID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byUser[userID]; ok {
		return false
	}
	p.byUser[userID] = connID
	p.byConn[connID] = userID
	return true
}

// Unregister 移除该连接对应的用户
func (p *Presence) Unregister(connID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	userID, ok := p.byConn[connID]
	if !ok {
		return "", false
	}
	delete(p.byConn, connID)
	delete(p.byUser, userID)
	return userID, true
}

func (p *Presence) Conn(userID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	connID, ok := p.byUser[userID]
	return connID, ok
}

// Entry 在线条目
type Entry struct {
	UserID string `json:"user_id"`
	ConnID string `json:"socket_id"`
}

// Online 当前在线列表，按用户 ID 排序
func (p *Presence) Online() []Entry {
	p.mu.RLock()
	out := make([]Entry, 0, len(p.byUser))
	for u, c := range p.byUser {
		out = append(out, Entry{UserID: u, ConnID: c})
	}
	p.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byUser)
}
