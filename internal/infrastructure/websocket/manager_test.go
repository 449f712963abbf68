package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerBroadcastsToRegisteredClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	a := &Client{AdminID: "admin-1", Send: make(chan []byte, 1)}
	b := &Client{AdminID: "admin-2", Send: make(chan []byte, 1)}
	m.Register <- a
	m.Register <- b
	require.Eventually(t, func() bool { return m.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	m.Broadcast([]byte(`{"type":"posts"}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"posts"}`, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %s got no message", c.AdminID)
		}
	}

	m.Unregister <- a
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
}

func TestManagerDropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	slow := &Client{AdminID: "slow", Send: make(chan []byte)}
	m.Register <- slow
	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m.Broadcast([]byte("x"))
	require.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
