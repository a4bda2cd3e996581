package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestHub stands up a real websocket pair: the server side registers
// into the hub, the client side is returned for reading.
func dialTestHub(t *testing.T, hub *Hub, adminID int64) (*websocket.Conn, *session) {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	sessCh := make(chan *session, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sessCh <- hub.Register(adminID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case sess := <-sessCh:
		return client, sess
	case <-time.After(5 * time.Second):
		t.Fatal("server never registered the connection")
		return nil, nil
	}
}

func TestHub_PublishReachesConnectedAdmin(t *testing.T) {
	hub := NewHub()
	client, _ := dialTestHub(t, hub, 1)

	require.Equal(t, 1, hub.OnlineCount())
	hub.Publish("brand.created", map[string]string{"name": "El Mida"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, "brand.created", ev.Type)
	assert.False(t, ev.SentAt.IsZero())
}

// Broadcasts and keepalive pings hit the same connection from different
// goroutines; the session lock has to serialize them without losing events.
func TestHub_ConcurrentPublishAndPing(t *testing.T) {
	hub := NewHub()
	client, sess := dialTestHub(t, hub, 1)

	const events = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < events; i++ {
			hub.Publish("contact.created", map[string]int{"seq": i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < events; i++ {
			_ = sess.ping()
		}
	}()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(10*time.Second)))
	for received := 0; received < events; received++ {
		var ev Event
		require.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, "contact.created", ev.Type)
	}
	wg.Wait()

	// no write failed, so nobody was dropped
	assert.Equal(t, 1, hub.OnlineCount())
}

func TestHub_UnregisterDropsConnection(t *testing.T) {
	hub := NewHub()
	_, _ = dialTestHub(t, hub, 7)

	require.Equal(t, 1, hub.OnlineCount())
	hub.Unregister(7)
	assert.Equal(t, 0, hub.OnlineCount())

	// publishing into an empty hub is a no-op
	hub.Publish("brand.created", nil)
}
