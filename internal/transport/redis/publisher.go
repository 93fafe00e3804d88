package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	EventBoard  = "board"
	EventStatus = "status"

	publishTimeout = 2 * time.Second
)

// Event is the message published for every session notification.
type Event struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id"`
	Board     *entity.Board `json:"board,omitempty"`
	Status    string        `json:"status,omitempty"`
}

// Publisher forwards session notifications to Redis pub/sub. Nothing is stored.
type Publisher struct {
	logger *slog.Logger
	client *redis.Client
	prefix string
}

func NewPublisher(logger *slog.Logger, client *redis.Client, prefix string) *Publisher {
	return &Publisher{
		logger: logger.With("component", "redis_publisher"),
		client: client,
		prefix: prefix,
	}
}

func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func (that *Publisher) Channel(sessionID string) string {
	return that.prefix + ":" + sessionID
}

func (that *Publisher) OnBoardChanged(sessionID string, board entity.Board) {
	that.publish(Event{Type: EventBoard, SessionID: sessionID, Board: &board})
}

func (that *Publisher) OnStatusChanged(sessionID string, status string) {
	that.publish(Event{Type: EventStatus, SessionID: sessionID, Status: status})
}

// Subscribe - listens to the notifications of one session.
func (that *Publisher) Subscribe(ctx context.Context, sessionID string) *redis.PubSub {
	return that.client.Subscribe(ctx, that.Channel(sessionID))
}

func (that *Publisher) publish(event Event) {
	log := that.logger.With("method", "publish", "session", event.SessionID, "type", event.Type)

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Error("could not marshal event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err = that.client.Publish(ctx, that.Channel(event.SessionID), eventJSON).Err(); err != nil {
		log.Error("failed to publish event", "error", err)
	}
}
