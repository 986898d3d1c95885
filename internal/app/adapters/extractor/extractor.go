package extractor

import (
	"log/slog"
	"regexp"
	"strings"

	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"
)

// Patterns tried in order against the raw message content. First
// capture group wins. The bare-@ fallback runs only after mention
// resolution had its chance, so `<@id>` tokens resolve to a real name
// instead of a snowflake.
var contentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)executed by (\S+)`),
	regexp.MustCompile(`(?i)user[:\s]+(\S+)`),
	regexp.MustCompile(`(?i)username[:\s]+(\S+)`),
	regexp.MustCompile(`(?i)(\S+)\s+executed`),
}

var (
	mentionPattern  = regexp.MustCompile(`<@!?(\d+)>`)
	fallbackPattern = regexp.MustCompile(`@(\S+)`)
)

// Extractor resolves the actor name behind an execution-log message:
// embed "username" fields first, then a regex cascade over plain
// content, then mention resolution through the user cache.
type Extractor struct {
	log   logger.Logger
	api   ports.APIPort
	users ports.CachePort[string]
}

func New(log logger.Logger, api ports.APIPort, users ports.CachePort[string]) *Extractor {
	return &Extractor{
		log:   log,
		api:   api,
		users: users,
	}
}

func (e *Extractor) Extract(msg *ports.GatewayMessage) (string, bool) {
	for _, embed := range msg.Embeds {
		if name, ok := fromEmbed(embed); ok {
			return name, true
		}
	}

	if msg.Content == "" {
		return "", false
	}

	for _, pattern := range contentPatterns {
		if m := pattern.FindStringSubmatch(msg.Content); m != nil {
			return m[1], true
		}
	}

	if name, ok := e.fromMentions(msg); ok {
		return name, true
	}

	if m := fallbackPattern.FindStringSubmatch(msg.Content); m != nil {
		return m[1], true
	}

	return "", false
}

func fromEmbed(embed ports.Embed) (string, bool) {
	for _, field := range embed.Fields {
		if strings.EqualFold(field.Name, "username") && field.Value != "" {
			return field.Value, true
		}
	}
	return "", false
}

// fromMentions maps the first mention token to a display name. The
// gateway usually delivers the user object inline; the REST lookup
// through the cache covers payloads where it does not.
func (e *Extractor) fromMentions(msg *ports.GatewayMessage) (string, bool) {
	m := mentionPattern.FindStringSubmatch(msg.Content)
	if m == nil {
		return "", false
	}
	userID := m[1]

	for _, mention := range msg.Mentions {
		if mention.ID == userID && mention.Username != "" {
			e.users.Set(userID, mention.Username)
			return mention.Username, true
		}
	}

	if name, ok := e.users.Get(userID); ok {
		return name, true
	}

	user, err := e.api.GetUser(userID)
	if err != nil {
		e.log.Warn("Failed to resolve mentioned user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return "", false
	}

	e.users.Set(userID, user.Username)
	return user.Username, true
}
