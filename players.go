package plexwebsocket

import "time"

// a position drift against the wall clock larger than this indicates a seek
const seekThreshold = 5 * time.Second

// PlaySessionFilter wraps a Callback and suppresses "playing" notifications that don't
// represent a significant player event. A Plex Media Server emits a playing notification
// every few seconds while a client is playing; this filter reduces that stream to the
// events a caller typically acts on: a new session, a session ending, a play state or
// media change, or a seek. Buffering states are transient and never significant. All
// other signals pass through unchanged.
//
// A PlaySessionFilter is not safe for concurrent use. This is fine when used as a
// NotificationListener callback, since the listener invokes it sequentially.
type PlaySessionFilter struct {
	callback Callback
	players  map[string]*playerState
	now      func() time.Time
}

// playerState is the last observed state of one play session.
type playerState struct {
	timestamp time.Time
	state     string
	mediaKey  string
	position  int
}

// NewPlaySessionFilter returns a PlaySessionFilter forwarding to callback.
func NewPlaySessionFilter(callback Callback) *PlaySessionFilter {
	return &PlaySessionFilter{
		callback: callback,
		players:  make(map[string]*playerState),
		now:      time.Now,
	}
}

// Handle processes one Signal, forwarding it to the wrapped callback unless it is a
// "playing" notification without a significant player event. Pass it as the callback
// when creating a NotificationListener.
func (f *PlaySessionFilter) Handle(signal Signal) {
	if signal.Type == SignalConnectionState {
		if signal.State == StateDisconnected {
			// session keys reset if the server restarted, be safe
			clear(f.players)
		}
		f.callback(signal)
		return
	}
	if signal.Data.Type != "playing" || f.significant(signal.Data.PlaySessionStateNotifications) {
		f.callback(signal)
	}
}

// significant reports whether any of the notifications represents a significant player
// event. It evaluates all of them, so the session table stays current either way.
func (f *PlaySessionFilter) significant(notifications []PlaySessionStateNotification) bool {
	var significant bool
	for _, notification := range notifications {
		if f.playerEvent(notification) {
			significant = true
		}
	}
	return significant
}

func (f *PlaySessionFilter) playerEvent(notification PlaySessionStateNotification) bool {
	player, ok := f.players[notification.SessionKey]
	if !ok {
		f.players[notification.SessionKey] = &playerState{
			state:     notification.State,
			mediaKey:  notification.Key,
			position:  notification.ViewOffset,
			timestamp: f.now(),
		}
		return true
	}

	// sessions end when stopped
	if notification.State == "stopped" {
		delete(f.players, notification.SessionKey)
		return true
	}

	now := f.now()
	var fire bool
	if notification.State != "buffering" {
		if player.mediaKey != notification.Key || player.state != notification.State {
			// play state or playback item changed
			fire = true
		} else if notification.State == "playing" && player.seeked(now, notification.ViewOffset) {
			fire = true
		}
	}

	player.state = notification.State
	player.mediaKey = notification.Key
	player.position = notification.ViewOffset
	player.timestamp = now

	return fire
}

// seeked reports whether the position change cannot be explained by normal playback
// since the previous update.
func (p *playerState) seeked(now time.Time, position int) bool {
	elapsed := now.Sub(p.timestamp)
	progressed := time.Duration(position-p.position) * time.Millisecond
	return (elapsed - progressed).Abs() > seekThreshold
}
