package plexwebsocket

import "slices"

// knownTopics contains all notification types emitted by a Plex Media Server.
var knownTopics = []string{
	"activity",
	"backgroundProcessingQueue",
	"playing",
	"preference",
	"progress",
	"reachability",
	"status",
	"timeline",
	"transcode.end",
	"transcodeSession.end",
	"transcodeSession.start",
	"transcodeSession.update",
	"update.statechange",
}

// DefaultTopics returns the topics a NotificationListener subscribes to when WithTopics
// is not used, i.e. all notification types emitted by a Plex Media Server.
func DefaultTopics() []string {
	return slices.Clone(knownTopics)
}

// message is one frame received on the notification channel.
type message struct {
	NotificationContainer NotificationContainer `json:"NotificationContainer"`
}

// NotificationContainer is the payload of one notification frame. Type identifies the
// notification's topic; depending on the topic, one of the notification lists is populated.
type NotificationContainer struct {
	Type                          string                         `json:"type"`
	PlaySessionStateNotifications []PlaySessionStateNotification `json:"PlaySessionStateNotification"`
	ActivityNotifications         []ActivityNotification         `json:"ActivityNotification"`
	StatusNotifications           []StatusNotification           `json:"StatusNotification"`
	TimelineEntries               []TimelineEntry                `json:"TimelineEntry"`
	Size                          int                            `json:"size"`
}

// PlaySessionStateNotification reports the state of an active play session ("playing" topic).
type PlaySessionStateNotification struct {
	SessionKey       string `json:"sessionKey"`
	ClientIdentifier string `json:"clientIdentifier"`
	GUID             string `json:"guid"`
	Key              string `json:"key"`
	RatingKey        string `json:"ratingKey"`
	URL              string `json:"url"`
	State            string `json:"state"`
	TranscodeSession string `json:"transcodeSession"`
	ViewOffset       int    `json:"viewOffset"`
	PlayQueueItemID  int    `json:"playQueueItemID"`
}

// ActivityNotification reports progress of a server-side activity ("activity" topic),
// e.g. a library scan.
type ActivityNotification struct {
	Event    string   `json:"event"`
	UUID     string   `json:"uuid"`
	Activity Activity `json:"Activity"`
}

// Activity describes the server-side activity inside an ActivityNotification.
type Activity struct {
	UUID     string `json:"uuid"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Context  struct {
		Key string `json:"key"`
	} `json:"Context"`
	Progress    int  `json:"progress"`
	UserID      int  `json:"userID"`
	Cancellable bool `json:"cancellable"`
}

// StatusNotification reports a server status message ("status" topic).
type StatusNotification struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	NotificationName string `json:"notificationName"`
}

// TimelineEntry reports a library item change ("timeline" topic).
type TimelineEntry struct {
	Identifier    string `json:"identifier"`
	SectionID     string `json:"sectionID"`
	ItemID        string `json:"itemID"`
	Title         string `json:"title"`
	MetadataState string `json:"metadataState"`
	UpdatedAt     int64  `json:"updatedAt"`
	Type          int    `json:"type"`
	State         int    `json:"state"`
}
