package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	rosterModel "github.com/danilkaz/pickup-queue/internal/roster/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) JoinSolo(ctx context.Context, nickname string) (*engine.SoloResult, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.SoloResult), args.Error(1)
}

func (m *mockService) RemovePlayer(ctx context.Context, id uint) (*engine.RemovePlayerResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.RemovePlayerResult), args.Error(1)
}

var _ Service = (*mockService)(nil)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context) {
	m.Called(ctx)
}

var _ Publisher = (*mockPublisher)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_JoinSolo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/api/players", handler.JoinSolo)

		resp := &engine.SoloResult{
			PlayerID:      1,
			Nickname:      "Alice",
			TeamID:        1,
			TeamName:      "Team Red",
			PlayersNeeded: 6,
		}
		mockSvc.On("JoinSolo", mock.Anything, "Alice").Return(resp, nil)
		mockPub.On("Publish", mock.Anything).Return()

		body, _ := json.Marshal(map[string]string{"nickname": "Alice"})
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/api/players", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response engine.SoloResult
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Alice", response.Nickname)
		assert.Equal(t, "Team Red", response.TeamName)
		assert.Equal(t, 6, response.PlayersNeeded)
		mockSvc.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("missing nickname", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/api/players", handler.JoinSolo)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/api/players", bytes.NewBufferString(`{}`))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
		mockSvc.AssertNotCalled(t, "JoinSolo")
		mockPub.AssertNotCalled(t, "Publish")
	})

	t.Run("nickname too long", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/api/players", handler.JoinSolo)

		long := "this nickname is way too long"
		mockSvc.On("JoinSolo", mock.Anything, long).Return(nil, rosterModel.ErrInvalidNickname)

		body, _ := json.Marshal(map[string]string{"nickname": long})
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/api/players", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
		mockPub.AssertNotCalled(t, "Publish")
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/api/players", handler.JoinSolo)

		mockSvc.On("JoinSolo", mock.Anything, "Alice").Return(nil, errors.New("db down"))

		body, _ := json.Marshal(map[string]string{"nickname": "Alice"})
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/api/players", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "INTERNAL_ERROR", response.Error.Code)
		mockPub.AssertNotCalled(t, "Publish")
	})
}

func TestHandler_RemovePlayer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.DELETE("/api/players/:id", handler.RemovePlayer)

		mockSvc.On("RemovePlayer", mock.Anything, uint(42)).
			Return(&engine.RemovePlayerResult{TeamRemoved: false}, nil)
		mockPub.On("Publish", mock.Anything).Return()

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/api/players/42", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response engine.RemovePlayerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.TeamRemoved)
		mockSvc.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("last player removes team", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.DELETE("/api/players/:id", handler.RemovePlayer)

		mockSvc.On("RemovePlayer", mock.Anything, uint(7)).
			Return(&engine.RemovePlayerResult{TeamRemoved: true}, nil)
		mockPub.On("Publish", mock.Anything).Return()

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/api/players/7", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response engine.RemovePlayerResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.TeamRemoved)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.DELETE("/api/players/:id", handler.RemovePlayer)

		mockSvc.On("RemovePlayer", mock.Anything, uint(99)).
			Return(nil, rosterModel.ErrPlayerNotFound)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/api/players/99", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "NOT_FOUND", response.Error.Code)
		mockPub.AssertNotCalled(t, "Publish")
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc := new(mockService)
		mockPub := new(mockPublisher)
		handler := New(mockSvc, mockPub, zap.NewNop().Sugar())
		router := setupRouter()
		router.DELETE("/api/players/:id", handler.RemovePlayer)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("DELETE", "/api/players/abc", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "RemovePlayer")
	})
}
