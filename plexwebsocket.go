package plexwebsocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"codeberg.org/clambin/go-common/set"
	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultCloseTimeout     = 3 * time.Second
	defaultHeartbeat        = 15 * time.Second
	defaultInitialBackoff   = time.Second
	defaultMaxBackoff       = 30 * time.Second
)

// Option configures a NotificationListener.
type Option func(*NotificationListener)

// WithLogger configures an optional logger. Default: a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *NotificationListener) {
		l.logger = logger
	}
}

// WithDialer overrides the websocket dialer used to establish the connection, e.g.
// to disable TLS certificate validation or set a proxy.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(l *NotificationListener) {
		l.dialer = dialer
	}
}

// WithTopics limits delivered notifications to the given topics. Notifications for any
// other topic are silently dropped. Default: DefaultTopics().
func WithTopics(topics ...string) Option {
	return func(l *NotificationListener) {
		l.topics = set.New(topics...)
	}
}

// WithBackoff configures the delay between reconnect attempts: initial on the first
// failure, doubling on each consecutive failure up to max. Default: 1s up to 30s.
func WithBackoff(initial, max time.Duration) Option {
	return func(l *NotificationListener) {
		l.initialBackoff = initial
		l.maxBackoff = max
	}
}

// WithIdentity sets the device information passed to the server (as X-Plex-* headers)
// when establishing the connection.
func WithIdentity(identity ClientIdentity) Option {
	return func(l *NotificationListener) {
		l.identity = identity
	}
}

// WithCloseTimeout bounds the graceful close handshake: if the server does not respond
// to the close message within the timeout, the connection is forced closed. Default: 3s.
func WithCloseTimeout(timeout time.Duration) Option {
	return func(l *NotificationListener) {
		l.closeTimeout = timeout
	}
}

// WithHeartbeat sets the interval at which the listener pings the server. A connection
// that produces neither a pong nor any frame for two intervals is considered dead and
// reported as a transport failure, triggering a reconnect. A zero or negative interval
// disables the heartbeat. Default: 15s.
func WithHeartbeat(interval time.Duration) Option {
	return func(l *NotificationListener) {
		l.heartbeat = interval
	}
}

// NotificationListener maintains a persistent websocket connection to a Plex Media
// Server's notification channel and forwards notifications and connection state
// transitions to a caller-supplied callback. Create one with New, run it with Listen
// and stop it with Close.
type NotificationListener struct {
	tokenSource    TokenSource
	callback       Callback
	dialer         *websocket.Dialer
	logger         *slog.Logger
	topics         set.Set[string]
	identity       ClientIdentity
	url            string
	initialBackoff time.Duration
	maxBackoff     time.Duration
	closeTimeout   time.Duration
	heartbeat      time.Duration

	lock    sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	session int
}

// New creates a NotificationListener for the Plex Media Server at url. tokenSource
// provides the X-Plex-Token used to authenticate the connection; callback receives
// the notifications and connection state transitions.
func New(url string, tokenSource TokenSource, callback Callback, opts ...Option) *NotificationListener {
	l := NotificationListener{
		url:            url,
		tokenSource:    tokenSource,
		callback:       callback,
		dialer:         &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout},
		logger:         slog.New(slog.DiscardHandler),
		topics:         set.New(knownTopics...),
		identity:       defaultClientIdentity,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
		closeTimeout:   defaultCloseTimeout,
		heartbeat:      defaultHeartbeat,
	}
	for _, o := range opts {
		o(&l)
	}
	return &l
}

// Listen connects to the server's notification channel and delivers signals to the
// callback until Close is called or ctx is cancelled. Connection failures are not fatal:
// they are reported as ConnectionState signals and the connection is retried with
// exponential backoff, indefinitely. Listen returns once the connection is closed and no
// further callback invocations will occur. Its return value is nil unless the listener
// is already running.
func (l *NotificationListener) Listen(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.lock.Lock()
	if l.stopped {
		l.lock.Unlock()
		return nil
	}
	if l.cancel != nil {
		l.lock.Unlock()
		return errors.New("already listening")
	}
	l.cancel = cancel
	l.lock.Unlock()

	defer func() {
		l.lock.Lock()
		l.cancel = nil
		l.lock.Unlock()
	}()

	r := newRetrier(l.initialBackoff, l.maxBackoff)
	for {
		l.run(ctx, r)
		if !r.wait(ctx) {
			return nil
		}
	}
}

// Close requests a graceful shutdown of the listener: safe to call from any goroutine,
// idempotent, and a no-op if the listener isn't running. Any pending frame read or
// backoff delay is interrupted. Once closed, the listener cannot be restarted.
func (l *NotificationListener) Close() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.stopped = true
	if l.cancel != nil {
		l.cancel()
	}
}

// run performs a single connection session: connect, read frames until the connection
// ends, and emit the session's connection state transitions in order.
func (l *NotificationListener) run(ctx context.Context, r *retrier) {
	l.lock.Lock()
	l.session++
	logger := l.logger.With("session", l.session)
	l.lock.Unlock()

	l.emitState(logger, StateConnecting, nil)

	conn, err := l.connect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			l.emitState(logger, StateDisconnected, nil)
			return
		}
		logger.Warn("connection failed", "err", err)
		l.emitState(logger, StateDisconnected, &ConnectError{Err: err})
		return
	}

	r.reset()
	l.emitState(logger, StateConnected, nil)

	l.resetReadDeadline(conn)
	conn.SetPongHandler(func(string) error {
		l.resetReadDeadline(conn)
		return nil
	})

	// ping the server, and close the connection when ctx is cancelled or once the read
	// loop ends
	readDone := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		l.watch(ctx, conn, readDone)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			close(readDone)
			<-watcherDone
			if ctx.Err() != nil {
				l.emitState(logger, StateDisconnecting, nil)
				l.emitState(logger, StateDisconnected, nil)
				return
			}
			logger.Warn("connection lost", "err", err)
			l.emitState(logger, StateDisconnected, &TransportError{Err: err})
			return
		}
		l.resetReadDeadline(conn)
		l.dispatch(logger, data)
	}
}

// connect establishes the websocket connection to the server's notification endpoint.
func (l *NotificationListener) connect(ctx context.Context) (*websocket.Conn, error) {
	token, err := l.tokenSource.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	header := make(http.Header)
	header.Set("X-Plex-Token", token)
	l.identity.populateHeader(header)

	conn, resp, err := l.dialer.DialContext(ctx, l.endpoint(), header)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			if errors.Is(err, websocket.ErrBadHandshake) {
				err = fmt.Errorf("%w: %s", err, resp.Status)
			}
		}
		return nil, err
	}
	return conn, nil
}

// endpoint derives the websocket notification endpoint from the server's base URL.
func (l *NotificationListener) endpoint() string {
	u := strings.TrimSuffix(l.url, "/") + "/:/websockets/notifications"
	if after, ok := strings.CutPrefix(u, "http"); ok {
		u = "ws" + after
	}
	return u
}

// watch pings the server at the heartbeat interval and closes the connection once the
// read loop ends. If ctx is cancelled first, it initiates a graceful close handshake,
// forcing the connection closed if the server does not respond within the close timeout.
func (l *NotificationListener) watch(ctx context.Context, conn *websocket.Conn, readDone <-chan struct{}) {
	var ping <-chan time.Time
	if l.heartbeat > 0 {
		ticker := time.NewTicker(l.heartbeat)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-readDone:
			_ = conn.Close()
			return
		case <-ping:
			_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(l.closeTimeout))
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(l.closeTimeout),
			)
			select {
			case <-readDone:
			case <-time.After(l.closeTimeout):
			}
			_ = conn.Close()
			return
		}
	}
}

// resetReadDeadline extends the connection's read deadline by two heartbeat intervals.
// It is called on connect and whenever the connection shows life (a frame or a pong), so
// a connection that went silent for two intervals fails its next read.
func (l *NotificationListener) resetReadDeadline(conn *websocket.Conn) {
	if l.heartbeat > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(2 * l.heartbeat))
	}
}

// dispatch decodes a frame and, if its topic is subscribed to, delivers it to the
// callback. Malformed frames and frames for other topics are silently dropped.
func (l *NotificationListener) dispatch(logger *slog.Logger, data []byte) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Debug("dropping malformed frame", "err", err)
		return
	}
	if !l.topics.Contains(msg.NotificationContainer.Type) {
		logger.Debug("dropping frame", "topic", msg.NotificationContainer.Type)
		return
	}
	l.callback(Signal{Type: SignalData, Data: &msg.NotificationContainer})
}

func (l *NotificationListener) emitState(logger *slog.Logger, state ConnectionState, err error) {
	logger.Debug("websocket", "state", state)
	l.callback(Signal{Type: SignalConnectionState, State: state, Err: err})
}
