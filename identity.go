package plexwebsocket

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/google/uuid"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		defaultClientIdentity.Version = info.Main.Version
	}
	defaultClientIdentity.DeviceName, _ = os.Hostname()
}

// ClientIdentity identifies the client to the Plex Media Server. Although this package
// provides a default, it is recommended to set this yourself (see WithIdentity).
type ClientIdentity struct {
	// Product is the name of the client product.
	// Passed as X-Plex-Product header.
	Product string
	// Version is the version of the client application.
	// Passed as X-Plex-Version header.
	Version string
	// Platform is the operating system or compiler of the client application.
	// Passed as X-Plex-Platform header.
	Platform string
	// PlatformVersion is the version of the platform.
	// Passed as X-Plex-Platform-Version header.
	PlatformVersion string
	// Device is a relatively friendly name for the client device.
	// Passed as X-Plex-Device header.
	Device string
	// DeviceName is a friendly name for the client.
	// Passed as X-Plex-Device-Name header.
	DeviceName string
	// Identifier is a unique identifier for the client.
	// Passed as X-Plex-Client-Identifier header.
	Identifier string
}

func (id ClientIdentity) populateHeader(header http.Header) {
	headers := map[string]string{
		"X-Plex-Product":           id.Product,
		"X-Plex-Version":           id.Version,
		"X-Plex-Platform":          id.Platform,
		"X-Plex-Platform-Version":  id.PlatformVersion,
		"X-Plex-Device":            id.Device,
		"X-Plex-Device-Name":       id.DeviceName,
		"X-Plex-Client-Identifier": id.Identifier,
	}
	for key, value := range headers {
		if value != "" {
			header.Set(key, value)
		}
	}
}

var defaultClientIdentity = ClientIdentity{
	Product:         "github.com/clambin/plexwebsocket",
	Version:         "(devel)",
	Device:          "plex",
	Platform:        runtime.GOOS,
	PlatformVersion: runtime.Version(),
	Identifier:      uuid.New().String(),
}
