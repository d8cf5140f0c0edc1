package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_BindLookupUnbind(t *testing.T) {
	t.Parallel()

	m := NewManager()

	_, ok := m.Lookup("conn1")
	assert.False(t, ok)

	m.Bind("conn1", "123456", 3)
	b, ok := m.Lookup("conn1")
	require.True(t, ok)
	assert.Equal(t, Binding{GameID: "123456", Seat: 3}, b)
	assert.Equal(t, 1, m.Count())

	// 重新绑定覆盖旧座位（换局）
	m.Bind("conn1", "654321", 0)
	b, _ = m.Lookup("conn1")
	assert.Equal(t, Binding{GameID: "654321", Seat: 0}, b)
	assert.Equal(t, 1, m.Count())

	m.Unbind("conn1")
	_, ok = m.Lookup("conn1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())

	// 解绑不存在的连接不应 panic
	m.Unbind("ghost")
}

func TestManager_UnbindSeat(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Bind("old-conn", "123456", 3)
	m.Bind("other", "123456", 4)

	evicted, ok := m.UnbindSeat("123456", 3)
	require.True(t, ok)
	assert.Equal(t, "old-conn", evicted)

	_, ok = m.Lookup("old-conn")
	assert.False(t, ok)

	// 其他座位的绑定不受影响
	_, ok = m.Lookup("other")
	assert.True(t, ok)

	// 没有绑定的座位返回 false
	_, ok = m.UnbindSeat("123456", 3)
	assert.False(t, ok)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			m.Bind(id, "123456", n)
			m.Lookup(id)
			m.Unbind(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, m.Count())
}
