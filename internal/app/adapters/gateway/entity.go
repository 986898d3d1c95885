package gateway

import "encoding/json"

const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// Gateway intents: GUILDS | GUILD_MESSAGES | MESSAGE_CONTENT.
const identifyIntents = 1<<0 | 1<<9 | 1<<15

type gatewayPayload struct {
	Op int             `json:"op"`
	T  string          `json:"t,omitempty"`
	S  *int64          `json:"s,omitempty"`
	D  json.RawMessage `json:"d,omitempty"`
}

type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string             `json:"token"`
	Intents    int                `json:"intents"`
	Properties identifyProperties `json:"properties"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type readyData struct {
	SessionID string `json:"session_id"`
	User      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type userObject struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embedObject struct {
	Title  string       `json:"title"`
	Fields []embedField `json:"fields"`
}

type messageCreateEvent struct {
	ID        string        `json:"id"`
	ChannelID string        `json:"channel_id"`
	Content   string        `json:"content"`
	Author    userObject    `json:"author"`
	Embeds    []embedObject `json:"embeds"`
	Mentions  []userObject  `json:"mentions"`
}
