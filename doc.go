/*
Package plexwebsocket provides a client for a Plex Media Server's websocket notification channel.

A [NotificationListener] maintains a persistent connection to the server's /:/websockets/notifications
endpoint, decodes the incoming notifications, filters them by topic, and forwards them to a
caller-supplied callback, together with connection state transitions. Connection failures are not
fatal: the listener reports them through the callback and reconnects with exponential backoff,
running until it is stopped.

The listener authenticates itself with an X-Plex-Token, provided through a [TokenSource]. Use
[FixedToken] if you already have a token (see [Finding an authentication token / X-Plex-Token]),
or provide your own implementation if the token is obtained dynamically (e.g. through plex.tv).

To reduce the steady stream of "playing" notifications to the events a caller typically acts on
(sessions starting and stopping, play state changes, seeks), wrap the callback in a
[PlaySessionFilter].

[Finding an authentication token / X-Plex-Token]: https://support.plex.tv/articles/204059436-finding-an-authentication-token-x-plex-token/
*/
package plexwebsocket
