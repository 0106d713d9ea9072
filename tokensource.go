package plexwebsocket

import "context"

// TokenSource provides the X-Plex-Token used to authenticate the connection. How the
// token is obtained (a fixed token, plex.tv credentials, JWT) is up to the caller; this
// package only consumes it. Token is called on every connection attempt, so a TokenSource
// may refresh an expired token between reconnects.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// FixedToken returns a TokenSource that always returns the same token.
func FixedToken(token string) TokenSource {
	return fixedTokenSource{token: token}
}

type fixedTokenSource struct {
	token string
}

func (s fixedTokenSource) Token(_ context.Context) (string, error) {
	return s.token, nil
}
