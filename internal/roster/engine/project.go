package engine

import (
	"context"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
)

// Project derives the externally visible game state from the roster.
// It is a pure read recomputed on every call; with a few dozen teams at
// most there is nothing worth caching.
func (e *Engine) Project(ctx context.Context) (*GameState, error) {
	onField, err := e.repo.OnFieldTeams(ctx)
	if err != nil {
		return nil, err
	}
	queued, err := e.repo.QueuedTeams(ctx)
	if err != nil {
		return nil, err
	}
	forming, err := e.repo.FormingTeams(ctx)
	if err != nil {
		return nil, err
	}

	totalComplete := 0
	for _, t := range onField {
		if len(t.Players) == model.TeamSize {
			totalComplete++
		}
	}
	for _, t := range queued {
		if len(t.Players) == model.TeamSize {
			totalComplete++
		}
	}

	canPlay := len(onField) == 2 &&
		len(onField[0].Players) == model.TeamSize &&
		len(onField[1].Players) == model.TeamSize

	if onField == nil {
		onField = []model.Team{}
	}
	if queued == nil {
		queued = []model.Team{}
	}
	if forming == nil {
		forming = []model.Team{}
	}

	return &GameState{
		OnField:       onField,
		Queued:        queued,
		Forming:       forming,
		TotalComplete: totalComplete,
		CanPlay:       canPlay,
	}, nil
}
