package websocket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ariaforge/internal/infrastructure"
)

func TestNewClient(t *testing.T) {
	conn := NewMockConnection()
	client := NewClient(nil, conn, "sess-1", "trace-1", infrastructure.NewTestLogger())

	assert.NotEmpty(t, client.ID())
	assert.Equal(t, "sess-1", client.SessionID())
	assert.Equal(t, "127.0.0.1:8080", client.remoteAddr)
}

func TestWritePumpDeliversMessages(t *testing.T) {
	conn := NewMockConnection()
	client := NewClient(nil, conn, "sess-1", "", infrastructure.NewTestLogger())

	done := make(chan struct{})
	go func() {
		client.WritePump()
		close(done)
	}()

	client.send <- []byte(`{"type":"session_update"}`)

	require.Eventually(t, func() bool {
		return len(conn.GetWrittenMessages()) == 1
	}, time.Second, 5*time.Millisecond)

	written := conn.GetWrittenMessages()
	assert.Equal(t, textMessage, written[0].Type)
	assert.JSONEq(t, `{"type":"session_update"}`, string(written[0].Data))

	// Closing the channel makes the pump send a close frame and exit.
	close(client.send)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("write pump did not exit")
	}

	written = conn.GetWrittenMessages()
	require.Len(t, written, 2)
	assert.Equal(t, closeMessage, written[1].Type)
}

func TestWritePumpDrainsQueuedMessages(t *testing.T) {
	conn := NewMockConnection()
	client := NewClient(nil, conn, "sess-1", "", infrastructure.NewTestLogger())

	client.send <- []byte(`"first"`)
	client.send <- []byte(`"second"`)
	client.send <- []byte(`"third"`)

	go client.WritePump()

	require.Eventually(t, func() bool {
		return len(conn.GetWrittenMessages()) == 3
	}, time.Second, 5*time.Millisecond)

	// Each queued message is delivered as its own frame.
	for _, msg := range conn.GetWrittenMessages() {
		assert.Equal(t, textMessage, msg.Type)
	}

	close(client.send)
}

func TestWritePumpClosedChannelWithQueuedMessages(t *testing.T) {
	conn := NewMockConnection()
	client := NewClient(nil, conn, "sess-1", "", infrastructure.NewTestLogger())

	client.send <- []byte(`"first"`)
	client.send <- []byte(`"second"`)
	client.send <- []byte(`"third"`)
	close(client.send)

	done := make(chan struct{})
	go func() {
		client.WritePump()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("write pump did not exit")
	}

	// Queued messages are all delivered, then exactly one close frame;
	// no empty text frames are emitted.
	written := conn.GetWrittenMessages()
	require.Len(t, written, 4)
	for _, msg := range written[:3] {
		assert.Equal(t, textMessage, msg.Type)
		assert.NotEmpty(t, msg.Data)
	}
	assert.Equal(t, closeMessage, written[3].Type)
}

func TestReadPumpConfiguresConnection(t *testing.T) {
	hub := newTestHub(t)
	client, conn := registerClient(t, hub, "sess-1")

	go client.ReadPump()

	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return conn.ReadLimit == maxMessageSize && conn.PongHandler != nil
	}, time.Second, 5*time.Millisecond)

	conn.Close()
}

func TestReadPumpHandlesHeartbeat(t *testing.T) {
	hub := newTestHub(t)
	client, conn := registerClient(t, hub, "sess-1")

	conn.AddReadMessage(textMessage, []byte(`{"type":"heartbeat"}`), nil)

	go client.ReadPump()

	// The heartbeat keeps the connection alive; nothing is echoed back.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, conn.GetWrittenMessages())
	assert.Equal(t, 1, hub.ClientCount())

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestReadPumpClosesConnectionOnExit(t *testing.T) {
	hub := newTestHub(t)
	client, conn := registerClient(t, hub, "sess-1")

	conn.AddReadMessage(0, nil, errors.New("use of closed network connection"))

	go client.ReadPump()

	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return conn.Closed
	}, time.Second, 5*time.Millisecond)
}
