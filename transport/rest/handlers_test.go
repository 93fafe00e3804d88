package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var errSomeError = errors.New("some error")

type mockSnapshotReader struct {
	mock.Mock
}

func (that *mockSnapshotReader) GetSnapshot(ctx context.Context, sessionID string) (entity.Snapshot, error) {
	args := that.Called(ctx, sessionID)
	return args.Get(0).(entity.Snapshot), args.Error(1)
}

func newRouter(reader snapshotReader) http.Handler {
	return NewRouter(slog.New(slog.NewJSONHandler(io.Discard, nil)), reader)
}

func TestPingHandler(t *testing.T) {
	recorder := httptest.NewRecorder()

	newRouter(&mockSnapshotReader{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestSessionHandler(t *testing.T) {
	t.Run("Returns the snapshot", func(t *testing.T) {
		// Given: a session with X in the center
		session := entity.NewSession("abc")
		require.NoError(t, session.Place(entity.PlayerX, 4))
		reader := &mockSnapshotReader{}
		reader.On("GetSnapshot", mock.Anything, "abc").Return(session.Snapshot(), nil).Once()

		// When: the session is requested
		recorder := httptest.NewRecorder()
		newRouter(reader).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

		// Then: the snapshot is returned as JSON
		require.Equal(t, http.StatusOK, recorder.Code)
		var snapshot entity.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Equal(t, session.Snapshot(), snapshot)
		reader.AssertExpectations(t)
	})

	t.Run("Unknown session", func(t *testing.T) {
		reader := &mockSnapshotReader{}
		reader.On("GetSnapshot", mock.Anything, "missing").
			Return(entity.Snapshot{}, fmt.Errorf("failed to get session: %w", apperror.ErrSessionNotFound)).
			Once()

		recorder := httptest.NewRecorder()
		newRouter(reader).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions/missing", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Internal error", func(t *testing.T) {
		reader := &mockSnapshotReader{}
		reader.On("GetSnapshot", mock.Anything, "abc").Return(entity.Snapshot{}, errSomeError).Once()

		recorder := httptest.NewRecorder()
		newRouter(reader).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})

	t.Run("Wrong method", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		newRouter(&mockSnapshotReader{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/sessions/abc", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
