package plexwebsocket

// SignalType indicates what a Signal carries: decoded notification data, or a connection
// state transition.
type SignalType int

const (
	// SignalData marks a Signal carrying a decoded notification.
	SignalData SignalType = iota
	// SignalConnectionState marks a Signal carrying a connection state transition.
	SignalConnectionState
)

// String returns a textual representation of the SignalType.
func (s SignalType) String() string {
	switch s {
	case SignalData:
		return "data"
	case SignalConnectionState:
		return "connection_state"
	default:
		return "unknown"
	}
}

// ConnectionState is the state of the listener's connection, as reported to the callback.
type ConnectionState string

const (
	// StateConnecting is reported when the listener starts a connection attempt.
	StateConnecting ConnectionState = "connecting"
	// StateConnected is reported when the connection has been established.
	StateConnected ConnectionState = "connected"
	// StateDisconnecting is reported when the listener starts a caller-requested shutdown.
	StateDisconnecting ConnectionState = "disconnecting"
	// StateDisconnected is reported when the connection has ended. Signal.Err holds the
	// failure that ended it, or nil if the shutdown was caller-requested.
	StateDisconnected ConnectionState = "disconnected"
)

// Signal is one unit of information delivered to the listener's callback. If Type is
// SignalData, Data holds the decoded notification. If Type is SignalConnectionState,
// State holds the new connection state and Err holds the failure detail for
// failure-driven disconnects (nil on clean transitions).
type Signal struct {
	Data  *NotificationContainer
	Err   error
	State ConnectionState
	Type  SignalType
}

// Callback receives Signals from a NotificationListener. The listener invokes the
// callback strictly sequentially, never concurrently with itself, in the order the
// signals were generated.
type Callback func(Signal)
