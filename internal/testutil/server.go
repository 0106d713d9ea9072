package testutil

import (
	"net/http"
	"sync"
	"time"

	"codeberg.org/clambin/go-common/testutils"
	"github.com/gorilla/websocket"
)

// NotificationServer is a fake Plex Media Server notification endpoint. It upgrades
// incoming requests to a websocket connection and lets tests push raw frames to the
// connected client, or close the connection from the server side.
type NotificationServer struct {
	// Token, if not blank, rejects clients that don't present it as X-Plex-Token.
	Token string
	// FailConnects rejects the first n upgrade attempts, simulating an unreachable server.
	FailConnects int
	// SwallowPings drops incoming ping frames without answering, simulating a dead link.
	SwallowPings bool

	clients  chan *websocket.Conn
	lock     sync.Mutex
	attempts int
	pings    int
}

// NewNotificationServer returns a NotificationServer that accepts clients presenting
// the given token.
func NewNotificationServer(token string) *NotificationServer {
	return &NotificationServer{
		Token:   token,
		clients: make(chan *websocket.Conn, 16),
	}
}

// ServeHTTP upgrades the request and serves the connection until the client goes away,
// completing the close handshake on the way out.
func (s *NotificationServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	s.attempts++
	reject := s.attempts <= s.FailConnects
	s.lock.Unlock()

	if reject {
		http.Error(w, "server unavailable", http.StatusServiceUnavailable)
		return
	}
	if s.Token != "" && r.Header.Get("X-Plex-Token") != s.Token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var upgrader websocket.Upgrader
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetPingHandler(func(data string) error {
		s.lock.Lock()
		s.pings++
		swallow := s.SwallowPings
		s.lock.Unlock()
		if swallow {
			return nil
		}
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	s.clients <- conn

	// the default close handler responds to the client's close message
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	_ = conn.Close()
}

// Connected yields each accepted client connection.
func (s *NotificationServer) Connected() <-chan *websocket.Conn {
	return s.clients
}

// Send writes a text frame to the given client connection.
func (s *NotificationServer) Send(conn *websocket.Conn, frame string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// Pings returns the number of ping frames received from clients.
func (s *NotificationServer) Pings() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pings
}

// PMSServer mimics a Plex Media Server without websocket support: it answers the
// notification endpoint with a plain HTTP response, so connecting a listener to it
// exercises the handshake failure path.
var PMSServer = testutils.TestServer{Responses: map[string]testutils.PathResponse{
	"/identity": {http.MethodGet: testutils.Response{
		StatusCode: http.StatusOK,
		Body: map[string]any{"MediaContainer": map[string]any{
			"size":              0,
			"claimed":           true,
			"machineIdentifier": "SomeUUID",
			"version":           "SomeVersion",
		}},
	}},

	"/:/websockets/notifications": {http.MethodGet: testutils.Response{
		StatusCode: http.StatusOK,
		Body:       "upgrade required",
	}},
}}
