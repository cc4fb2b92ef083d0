package engine

import (
	"context"
	"errors"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
	"github.com/danilkaz/pickup-queue/pkg/wordlist"
)

// maxCodeAttempts bounds group code regeneration on collision.
const maxCodeAttempts = 5

// CreateGroup persists a new friend group under a fresh join code.
func (e *Engine) CreateGroup(ctx context.Context) (*model.Group, error) {
	var group *model.Group
	err := e.mutate(ctx, func(repo repository.Repository) error {
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			code, err := wordlist.NewGroupCode()
			if err != nil {
				return err
			}

			_, err = repo.GroupByCode(ctx, code)
			if err == nil {
				continue // collision, roll again
			}
			if !errors.Is(err, model.ErrGroupNotFound) {
				return err
			}

			group, err = repo.CreateGroup(ctx, code)
			return err
		}
		return model.ErrCodeCollision
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// GroupStatus returns a group's current membership.
func (e *Engine) GroupStatus(ctx context.Context, code string) (*GroupStatus, error) {
	group, err := e.repo.GroupByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	players, err := e.repo.GroupPlayers(ctx, code)
	if err != nil {
		return nil, err
	}

	return &GroupStatus{
		Code:        group.Code,
		IsComplete:  group.IsComplete,
		Players:     players,
		SlotsNeeded: slotsNeeded(len(players)),
	}, nil
}

// JoinGroup appends a player to an open group. The seventh member triggers
// team formation: a team is created, all seven players move onto it in the
// same transaction, the group closes and the team joins the queue.
func (e *Engine) JoinGroup(ctx context.Context, code, nickname string) (*GroupJoinResult, error) {
	nickname, err := normalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	var result *GroupJoinResult
	err = e.mutate(ctx, func(repo repository.Repository) error {
		group, err := repo.GroupByCode(ctx, code)
		if err != nil {
			return err
		}
		if group.IsComplete {
			return model.ErrGroupComplete
		}

		players, err := repo.GroupPlayers(ctx, code)
		if err != nil {
			return err
		}
		if len(players) >= model.TeamSize {
			return model.ErrGroupFull
		}

		player, err := repo.CreatePlayer(ctx, nickname, &group.Code)
		if err != nil {
			return err
		}

		players, err = repo.GroupPlayers(ctx, code)
		if err != nil {
			return err
		}

		result = &GroupJoinResult{
			PlayerID:    player.ID,
			Nickname:    nickname,
			GroupCode:   group.Code,
			Players:     players,
			SlotsNeeded: slotsNeeded(len(players)),
		}

		if len(players) == model.TeamSize {
			formation, err := e.formGroupTeam(ctx, repo, group.Code)
			if err != nil {
				return err
			}
			result.Assignment = formation
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// formGroupTeam converts a full group into a queued team.
func (e *Engine) formGroupTeam(ctx context.Context, repo repository.Repository, code string) (*Formation, error) {
	team, err := e.startTeam(ctx, repo)
	if err != nil {
		return nil, err
	}

	if err := repo.AssignGroupToTeam(ctx, code, team.ID); err != nil {
		return nil, err
	}
	if err := repo.MarkGroupComplete(ctx, code); err != nil {
		return nil, err
	}

	position, err := enqueue(ctx, repo, team.ID)
	if err != nil {
		return nil, err
	}

	e.logger.Infow("group formed team",
		"group_code", code, "team_id", team.ID, "team_name", team.Name, "position", position)

	return &Formation{
		TeamID:        team.ID,
		TeamName:      team.Name,
		QueuePosition: position,
	}, nil
}

func slotsNeeded(playerCount int) int {
	if playerCount >= model.TeamSize {
		return 0
	}
	return model.TeamSize - playerCount
}
