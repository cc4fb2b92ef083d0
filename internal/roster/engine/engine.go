// Package engine implements the team-formation and queue-rotation rules:
// assigning arriving players to teams, promoting teams into the two
// on-field slots and re-sequencing the waiting line after each result.
package engine

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
)

// maxNicknameLength is the longest accepted nickname.
const maxNicknameLength = 20

// Engine owns all mutations of the roster. Every mutation takes the
// engine lock and runs in a single transaction, so position shifts are
// never observed half-applied and no two mutations interleave.
type Engine struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger

	mu sync.Mutex
}

// New creates a new engine instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// mutate serializes a roster mutation and runs it inside one transaction
// with a transaction-scoped repository.
func (e *Engine) mutate(ctx context.Context, fn func(repo repository.Repository) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.New(tx))
	})
}

// normalizeNickname trims whitespace and enforces the 1-20 character bound.
// The bound counts characters, not bytes, so multibyte nicknames get the
// full twenty.
func normalizeNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLength {
		return "", model.ErrInvalidNickname
	}
	return nickname, nil
}

// enqueue docks a team at the back of the line: one past the highest
// position currently in use. Freed positions are never reused mid-sequence,
// so a newly queued team cannot land in front of anyone.
func enqueue(ctx context.Context, repo repository.Repository, teamID uint) (int, error) {
	maxPos, err := repo.MaxQueuePosition(ctx)
	if err != nil {
		return 0, err
	}
	position := maxPos + 1
	if err := repo.SetQueuePosition(ctx, teamID, position); err != nil {
		return 0, err
	}
	return position, nil
}
