package ports

type GatewayPort interface {
	Run()
}

// GatewayMessage is one inbound chat event as delivered by the
// gateway, already decoded from the wire payload.
type GatewayMessage struct {
	ID        string
	ChannelID string
	Author    MessageAuthor
	Content   string
	Embeds    []Embed
	Mentions  []MessageAuthor
}

type MessageAuthor struct {
	ID       string
	Username string
	Bot      bool
}

type Embed struct {
	Title  string
	Fields []EmbedField
}

type EmbedField struct {
	Name  string
	Value string
}
