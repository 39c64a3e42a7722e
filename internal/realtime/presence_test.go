package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceFirstRegistrationWins(t *testing.T) {
	p := NewPresence()
	assert.True(t, p.Register("alice", "c1"))
	assert.False(t, p.Register("alice", "c2"))

	conn, ok := p.Conn("alice")
	assert.True(t, ok)
	assert.Equal(t, "c1", conn)

	// 未生效的连接断开不影响在线状态
	_, removed := p.Unregister("c2")
	assert.False(t, removed)
	assert.Equal(t, 1, p.Len())

	user, removed := p.Unregister("c1")
	assert.True(t, removed)
	assert.Equal(t, "alice", user)
	_, ok = p.Conn("alice")
	assert.False(t, ok)

	assert.True(t, p.Register("alice", "c2"))
}

func TestPresenceConcurrentRegisterKeepsOneEntryPerUser(t *testing.T) {
	p := NewPresence()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.Register(fmt.Sprintf("u%d", i%5), fmt.Sprintf("c%d", i))
		}(i)
	}
	wg.Wait()

	online := p.Online()
	assert.Len(t, online, 5)
	for i := 1; i < len(online); i++ {
		assert.Less(t, online[i-1].UserID, online[i].UserID)
	}
}
