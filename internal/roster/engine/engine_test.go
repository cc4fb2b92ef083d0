package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
)

func setupEngine(t *testing.T) *Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&model.Team{}, &model.Player{}, &model.Group{})
	require.NoError(t, err)

	return New(repository.New(db), db, zap.NewNop().Sugar())
}

// addTeam signs up seven solo players, producing one complete queued team.
// The prefix keeps nicknames unique across teams.
func addTeam(t *testing.T, eng *Engine, prefix string) *SoloResult {
	t.Helper()

	var last *SoloResult
	for i := 0; i < model.TeamSize; i++ {
		res, err := eng.JoinSolo(context.Background(), fmt.Sprintf("%s-%d", prefix, i))
		require.NoError(t, err)
		last = res
	}
	require.True(t, last.TeamComplete)
	require.NotNil(t, last.QueuePosition)
	return last
}

func teamPosition(t *testing.T, eng *Engine, id uint) *int {
	t.Helper()
	team, err := eng.repo.TeamByID(context.Background(), id)
	require.NoError(t, err)
	return team.QueuePosition
}

func requireAtPosition(t *testing.T, eng *Engine, id uint, want int) {
	t.Helper()
	got := teamPosition(t, eng, id)
	require.NotNil(t, got)
	require.Equal(t, want, *got)
}
