package ports

type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Bot        bool   `json:"bot"`
}

// PublisherPort sends a text message to a channel. Failures are
// reported but callers are expected to swallow them.
type PublisherPort interface {
	SendMessage(channelID, text string) error
}

type APIPort interface {
	PublisherPort
	GetUser(id string) (*User, error)
}
