package plexwebsocket_test

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/clambin/plexwebsocket"
)

func Example() {
	l := plexwebsocket.New("http://plex-hostname:32400", plexwebsocket.FixedToken("some-token"), func(signal plexwebsocket.Signal) {
		switch signal.Type {
		case plexwebsocket.SignalConnectionState:
			fmt.Println("connection state:", signal.State, signal.Err)
		case plexwebsocket.SignalData:
			fmt.Println("notification:", signal.Data.Type)
		}
	})

	// stop listening on interrupt
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
		l.Close()
	}()

	_ = l.Listen(context.Background())
}

func Example_playSessionFilter() {
	// only report significant player events: sessions starting & stopping, play state
	// changes, seeks.
	f := plexwebsocket.NewPlaySessionFilter(func(signal plexwebsocket.Signal) {
		if signal.Type == plexwebsocket.SignalData {
			for _, session := range signal.Data.PlaySessionStateNotifications {
				fmt.Println(session.SessionKey, session.State)
			}
		}
	})

	l := plexwebsocket.New("http://plex-hostname:32400", plexwebsocket.FixedToken("some-token"), f.Handle,
		plexwebsocket.WithTopics("playing"),
	)
	_ = l.Listen(context.Background())
}
