package redis

import (
	"encoding/json"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/testing/suite"
)

func receiveEvent(t *testing.T, messages <-chan *goredis.Message) Event {
	t.Helper()

	select {
	case msg := <-messages:
		var event Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestPublisher(t *testing.T) {
	ctx, st := suite.New(t)

	publisher := NewPublisher(st.Logger, st.Storage, "session")

	// Given: a subscriber on the session channel
	pubsub := publisher.Subscribe(ctx, "123")
	t.Cleanup(func() { _ = pubsub.Close() })
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)
	messages := pubsub.Channel()

	// When: the board and the status change
	board := entity.Board{entity.PlayerX}
	publisher.OnBoardChanged("123", board)
	publisher.OnStatusChanged("123", "Player X's turn")

	// Then: both events arrive in order
	boardEvent := receiveEvent(t, messages)
	assert.Equal(t, EventBoard, boardEvent.Type)
	assert.Equal(t, "123", boardEvent.SessionID)
	require.NotNil(t, boardEvent.Board)
	assert.Equal(t, board, *boardEvent.Board)

	statusEvent := receiveEvent(t, messages)
	assert.Equal(t, EventStatus, statusEvent.Type)
	assert.Equal(t, "Player X's turn", statusEvent.Status)
}

func TestPublisher_Channel(t *testing.T) {
	publisher := &Publisher{prefix: "ttt"}

	assert.Equal(t, "ttt:abc", publisher.Channel("abc"))
}
