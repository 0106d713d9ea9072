package plexwebsocket_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clambin/plexwebsocket"
)

func TestErrors(t *testing.T) {
	cause := errors.New("connection refused")

	err := error(&plexwebsocket.ConnectError{Err: cause})
	assert.Equal(t, "connect: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	var connErr *plexwebsocket.ConnectError
	require.ErrorAs(t, err, &connErr)

	err = &plexwebsocket.TransportError{Err: cause}
	assert.Equal(t, "transport: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	var transportErr *plexwebsocket.TransportError
	require.ErrorAs(t, err, &transportErr)
}
