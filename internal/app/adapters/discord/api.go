package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"discordstats/internal/app/infrastructure/config"
	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"

	"golang.org/x/time/rate"
)

const baseURL = "https://discord.com/api/v10"

// ErrPublish marks a report that could not be delivered. Callers log
// and move on; delivery is best-effort.
var ErrPublish = errors.New("publish failed")

// API is a minimal Discord REST client: message create for reports and
// user fetch for mention resolution. All calls go through one shared
// rate limiter so bursts of reports stay inside Discord's limits.
type API struct {
	log     logger.Logger
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

func New(log logger.Logger, cfg *config.Config, client *http.Client) *API {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Limiter.Requests > 0 && cfg.Limiter.Per > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Limiter.Per/time.Duration(cfg.Limiter.Requests)), cfg.Limiter.Requests)
	}

	return &API{
		log:     log,
		token:   cfg.App.BotToken,
		client:  client,
		limiter: limiter,
	}
}

func (a *API) SendMessage(channelID, text string) error {
	body, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return fmt.Errorf("%w: marshal body: %v", ErrPublish, err)
	}

	resp, err := a.do(http.MethodPost, fmt.Sprintf("%s/channels/%s/messages", baseURL, channelID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: channel %s: status %d: %s", ErrPublish, channelID, resp.StatusCode, string(raw))
	}
	return nil
}

func (a *API) GetUser(id string) (*ports.User, error) {
	resp, err := a.do(http.MethodGet, fmt.Sprintf("%s/users/%s", baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get user %s: status %d", id, resp.StatusCode)
	}

	var user ports.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (a *API) do(method, url string, body io.Reader) (*http.Response, error) {
	if err := a.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+a.token)
	req.Header.Set("Content-Type", "application/json")

	return a.client.Do(req)
}
