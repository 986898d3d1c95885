package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"discordstats/internal/app/adapters/metrics"
	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"

	"github.com/gorilla/websocket"
)

const gatewayURL = "wss://gateway.discord.gg/?v=10&encoding=json"

// Gateway maintains the Discord gateway websocket: identify,
// heartbeat, sequence tracking and dispatch of MESSAGE_CREATE to the
// registered handler. Connection loss triggers reconnect with a short
// backoff.
type Gateway struct {
	log     logger.Logger
	token   string
	handler ports.MessagePort

	seq atomic.Int64

	// writeMu serializes writes between the read loop and the
	// heartbeat goroutine; gorilla allows one concurrent writer only.
	writeMu sync.Mutex
}

func New(log logger.Logger, token string, handler ports.MessagePort) *Gateway {
	return &Gateway{
		log:     log,
		token:   token,
		handler: handler,
	}
}

func (g *Gateway) Run() {
	for {
		err := g.connectAndHandleEvents()
		metrics.GatewayConnected.Set(0)
		if err != nil {
			g.log.Warn("Gateway connection lost, retrying...", slog.String("error", err.Error()))
			time.Sleep(5 * time.Second)
		}
	}
}

func (g *Gateway) connectAndHandleEvents() error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	ws, resp, err := dialer.Dial(gatewayURL, nil)
	if err != nil {
		if resp != nil {
			if err := resp.Body.Close(); err != nil {
				g.log.Error("Failed to close response body", err)
			}
		}
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer ws.Close()

	stopHeartbeat := make(chan struct{})
	defer close(stopHeartbeat)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read: %w", err)
		}

		var payload gatewayPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			g.log.Error("Failed to decode gateway payload", err, slog.String("payload", string(raw)))
			continue
		}
		if payload.S != nil {
			g.seq.Store(*payload.S)
		}

		switch payload.Op {
		case opHello:
			var hello helloData
			if err := json.Unmarshal(payload.D, &hello); err != nil {
				return fmt.Errorf("decode hello: %w", err)
			}

			if err := g.identify(ws); err != nil {
				return fmt.Errorf("identify: %w", err)
			}
			go g.heartbeatLoop(ws, time.Duration(hello.HeartbeatInterval)*time.Millisecond, stopHeartbeat)
		case opHeartbeat:
			if err := g.sendHeartbeat(ws); err != nil {
				return fmt.Errorf("heartbeat: %w", err)
			}
		case opHeartbeatACK:
			g.log.Trace("Received heartbeat ack on gateway")
		case opReconnect:
			g.log.Debug("Received reconnect request on gateway")
			return nil
		case opInvalidSession:
			g.log.Warn("Gateway session invalidated")
			return nil
		case opDispatch:
			g.handleDispatch(payload)
		}
	}
}

func (g *Gateway) handleDispatch(payload gatewayPayload) {
	switch payload.T {
	case "READY":
		var ready readyData
		if err := json.Unmarshal(payload.D, &ready); err != nil {
			g.log.Error("Failed to decode READY event", err)
			return
		}

		metrics.GatewayConnected.Set(1)
		g.log.Info("Bot logged in", slog.String("username", ready.User.Username), slog.String("session_id", ready.SessionID))
	case "MESSAGE_CREATE":
		var event messageCreateEvent
		if err := json.Unmarshal(payload.D, &event); err != nil {
			g.log.Error("Failed to decode MESSAGE_CREATE event", err)
			return
		}

		g.log.Trace("New message", slog.String("channel_id", event.ChannelID), slog.String("author", event.Author.Username))
		g.handler.Handle(convertMessage(event))
	}
}

func (g *Gateway) identify(ws *websocket.Conn) error {
	data, err := json.Marshal(identifyData{
		Token:   g.token,
		Intents: identifyIntents,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: "discordstats",
			Device:  "discordstats",
		},
	})
	if err != nil {
		return err
	}
	return g.writeJSON(ws, gatewayPayload{Op: opIdentify, D: data})
}

func (g *Gateway) heartbeatLoop(ws *websocket.Conn, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := g.sendHeartbeat(ws); err != nil {
				g.log.Warn("Failed to send heartbeat", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (g *Gateway) sendHeartbeat(ws *websocket.Conn) error {
	seq := g.seq.Load()
	data, err := json.Marshal(seq)
	if err != nil {
		return err
	}
	return g.writeJSON(ws, gatewayPayload{Op: opHeartbeat, D: data})
}

func (g *Gateway) writeJSON(ws *websocket.Conn, payload gatewayPayload) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	return ws.WriteJSON(payload)
}

func convertMessage(event messageCreateEvent) *ports.GatewayMessage {
	msg := &ports.GatewayMessage{
		ID:        event.ID,
		ChannelID: event.ChannelID,
		Content:   event.Content,
		Author: ports.MessageAuthor{
			ID:       event.Author.ID,
			Username: event.Author.Username,
			Bot:      event.Author.Bot,
		},
	}

	for _, embed := range event.Embeds {
		e := ports.Embed{Title: embed.Title}
		for _, f := range embed.Fields {
			e.Fields = append(e.Fields, ports.EmbedField{Name: f.Name, Value: f.Value})
		}
		msg.Embeds = append(msg.Embeds, e)
	}
	for _, m := range event.Mentions {
		msg.Mentions = append(msg.Mentions, ports.MessageAuthor{ID: m.ID, Username: m.Username, Bot: m.Bot})
	}

	return msg
}
