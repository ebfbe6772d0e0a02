package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification center. Empty means
	// "Penmode".
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Penmode"
	}
	return o.AppName
}
