package plexwebsocket

var (
	_ error = (*ConnectError)(nil)
	_ error = (*TransportError)(nil)
)

// ConnectError reports a failure to establish the websocket connection: DNS or TCP
// failure, TLS failure, or a rejected HTTP upgrade (incl. an invalid token).
type ConnectError struct {
	Err error
}

// Error returns a string representation of the error.
func (e *ConnectError) Error() string {
	return "connect: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// TransportError reports a failure on an established connection: a read error, or the
// peer closing the connection.
type TransportError struct {
	Err error
}

// Error returns a string representation of the error.
func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
