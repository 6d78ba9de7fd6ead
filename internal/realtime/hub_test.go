package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, userID *uint) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, userID)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubRoutesByUser(t *testing.T) {
	hub := NewHub()
	alice := uint(1)
	bob := uint(2)

	console := dialHub(t, hub, nil)
	aliceConn := dialHub(t, hub, &alice)
	_ = dialHub(t, hub, &bob)

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 3 }, time.Second, 10*time.Millisecond)

	hub.Publish("notification.created", &alice, map[string]any{"id": 7})

	msg := readMessage(t, aliceConn)
	require.Equal(t, "notification.created", msg.Event)
	require.Equal(t, map[string]any{"id": float64(7)}, msg.Data)

	msg = readMessage(t, console)
	require.Equal(t, "notification.created", msg.Event)

	hub.Publish("notification.purged", nil, nil)
	require.Equal(t, "notification.purged", readMessage(t, aliceConn).Event)
	require.Equal(t, "notification.purged", readMessage(t, console).Event)
}

func TestHubAnswersPing(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, nil)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	require.Equal(t, "pong", readMessage(t, conn).Event)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, nil)

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Publishing with no clients is a no-op.
	hub.Publish("notification.created", nil, nil)
}

func TestHostHelpers(t *testing.T) {
	require.Equal(t, "example.com", hostWithoutPort("https://example.com:8443"))
	require.Equal(t, "localhost", hostWithoutPort("localhost:3000"))
	require.True(t, isLoopback("127.0.0.1"))
	require.True(t, isLoopback("localhost"))
	require.False(t, isLoopback("example.com"))
}
