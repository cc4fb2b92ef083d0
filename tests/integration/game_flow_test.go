//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gameRouter "github.com/danilkaz/pickup-queue/internal/game/router"
	groupRouter "github.com/danilkaz/pickup-queue/internal/group/router"
	playerRouter "github.com/danilkaz/pickup-queue/internal/player/router"
	"github.com/danilkaz/pickup-queue/internal/realtime"
	"github.com/danilkaz/pickup-queue/internal/roster/engine"
	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var sqlDB *sql.DB
	sqlDB, err = db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&model.Team{}, &model.Player{}, &model.Group{})
	require.NoError(t, err)

	return db
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	nop := zap.NewNop().Sugar()

	eng := engine.New(repository.New(db), db, nop)
	hub := realtime.NewHub(func(ctx context.Context) (interface{}, error) {
		return eng.Project(ctx)
	}, nop)

	r := gin.New()
	playerRouter.RegisterRoutes(r, eng, hub, nop)
	groupRouter.RegisterRoutes(r, eng, hub, nop)
	gameRouter.RegisterRoutes(r, eng, hub, nop)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// joinTeam signs up seven solo players through the API.
func joinTeam(t *testing.T, router *gin.Engine, prefix string) {
	t.Helper()
	for i := 0; i < 7; i++ {
		w := doJSON(t, router, "POST", "/api/players", map[string]string{
			"nickname": fmt.Sprintf("%s-%d", prefix, i),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func gameState(t *testing.T, router *gin.Engine) *engine.GameState {
	t.Helper()
	w := doJSON(t, router, "GET", "/api/game/state", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state engine.GameState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return &state
}

func TestSoloSignupFlow(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(t, db)

	// First signup starts a team.
	w := doJSON(t, router, "POST", "/api/players", map[string]string{"nickname": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	var first engine.SoloResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, 6, first.PlayersNeeded)
	assert.False(t, first.TeamComplete)

	// Six more complete it.
	for i := 0; i < 6; i++ {
		w = doJSON(t, router, "POST", "/api/players", map[string]string{
			"nickname": fmt.Sprintf("Player-%d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var last engine.SoloResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	assert.True(t, last.TeamComplete)
	require.NotNil(t, last.QueuePosition)
	assert.Equal(t, 1, *last.QueuePosition)

	state := gameState(t, router)
	assert.Len(t, state.OnField, 1)
	assert.False(t, state.CanPlay)
}

func TestGroupSignupFlow(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(t, db)

	w := doJSON(t, router, "POST", "/api/groups", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Code, 6)

	for i := 1; i <= 6; i++ {
		w = doJSON(t, router, "POST", "/api/groups/"+created.Code+"/join",
			map[string]string{"nickname": fmt.Sprintf("Friend-%d", i)})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// Status shows one slot left.
	w = doJSON(t, router, "GET", "/api/groups/"+created.Code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status engine.GroupStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 1, status.SlotsNeeded)
	assert.False(t, status.IsComplete)

	// Seventh member forms the team.
	w = doJSON(t, router, "POST", "/api/groups/"+created.Code+"/join",
		map[string]string{"nickname": "Friend-7"})
	require.Equal(t, http.StatusCreated, w.Code)

	var joined engine.GroupJoinResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	require.NotNil(t, joined.Assignment)
	assert.Equal(t, 1, joined.Assignment.QueuePosition)

	// A full group rejects further joins.
	w = doJSON(t, router, "POST", "/api/groups/"+created.Code+"/join",
		map[string]string{"nickname": "Late"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchRotationFlow(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(t, db)

	for i := 0; i < 4; i++ {
		joinTeam(t, router, fmt.Sprintf("team%d", i))
	}

	state := gameState(t, router)
	require.Len(t, state.OnField, 2)
	require.Len(t, state.Queued, 2)
	require.True(t, state.CanPlay)

	slot1 := state.OnField[0].Name
	slot2 := state.OnField[1].Name
	next := state.Queued[0].Name

	// Slot 1 wins: loser to the back, front of the line comes on.
	w := doJSON(t, router, "POST", "/api/game/win", map[string]int{"winnerSlot": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var win engine.WinResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &win))
	assert.Equal(t, slot1, win.Winner)
	assert.Equal(t, slot2, win.Loser)

	state = gameState(t, router)
	assert.Equal(t, slot1, state.OnField[0].Name)
	assert.Equal(t, next, state.OnField[1].Name)
	assert.Equal(t, slot2, state.Queued[len(state.Queued)-1].Name)

	// A draw sends both teams off.
	w = doJSON(t, router, "POST", "/api/game/draw", nil)
	require.Equal(t, http.StatusOK, w.Code)

	state = gameState(t, router)
	assert.NotEqual(t, slot1, state.OnField[0].Name)
	require.Len(t, state.OnField, 2)
	require.Len(t, state.Queued, 2)
}

func TestRemoveAndResetFlow(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(t, db)

	for i := 0; i < 3; i++ {
		joinTeam(t, router, fmt.Sprintf("team%d", i))
	}

	state := gameState(t, router)
	require.Len(t, state.Queued, 1)
	queuedID := state.Queued[0].ID
	playerID := state.Queued[0].Players[0].ID

	// Losing one player demotes the queued team to forming.
	w := doJSON(t, router, "DELETE", fmt.Sprintf("/api/players/%d", playerID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	state = gameState(t, router)
	assert.Empty(t, state.Queued)
	require.Len(t, state.Forming, 1)
	assert.Equal(t, queuedID, state.Forming[0].ID)

	// Removing an on-field team promotes the other positions.
	onFieldID := state.OnField[0].ID
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/game/teams/%d", onFieldID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	state = gameState(t, router)
	assert.Len(t, state.OnField, 1)

	// Reset wipes everything.
	w = doJSON(t, router, "POST", "/api/game/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	state = gameState(t, router)
	assert.Empty(t, state.OnField)
	assert.Empty(t, state.Queued)
	assert.Empty(t, state.Forming)
}

func TestAllTeamsListing(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(t, db)

	joinTeam(t, router, "full")
	w := doJSON(t, router, "POST", "/api/players", map[string]string{"nickname": "Straggler"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/api/game/teams", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Teams []model.Team `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Teams, 2)
}
