package engine

import (
	"context"
	"errors"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
	"github.com/danilkaz/pickup-queue/pkg/wordlist"
)

// JoinSolo places a lone signup into the oldest team that still has room
// and is not on-field, or starts a new team. A team reaching seven players
// is queued immediately.
func (e *Engine) JoinSolo(ctx context.Context, nickname string) (*SoloResult, error) {
	nickname, err := normalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	var result *SoloResult
	err = e.mutate(ctx, func(repo repository.Repository) error {
		team, err := repo.OldestJoinableTeam(ctx)
		if errors.Is(err, model.ErrTeamNotFound) {
			team, err = e.startTeam(ctx, repo)
		}
		if err != nil {
			return err
		}

		player, err := repo.CreatePlayer(ctx, nickname, nil)
		if err != nil {
			return err
		}
		if err := repo.AssignPlayerToTeam(ctx, player.ID, team.ID); err != nil {
			return err
		}

		count, err := repo.PlayerCount(ctx, team.ID)
		if err != nil {
			return err
		}

		result = &SoloResult{
			PlayerID:      player.ID,
			Nickname:      nickname,
			TeamID:        team.ID,
			TeamName:      team.Name,
			PlayersNeeded: model.TeamSize - count,
		}

		if count == model.TeamSize && team.QueuePosition == nil {
			position, err := enqueue(ctx, repo, team.ID)
			if err != nil {
				return err
			}
			result.TeamComplete = true
			result.QueuePosition = &position
			e.logger.Infow("team complete, queued",
				"team_id", team.ID, "team_name", team.Name, "position", position)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// startTeam creates a fresh forming team named after the team count.
func (e *Engine) startTeam(ctx context.Context, repo repository.Repository) (*model.Team, error) {
	count, err := repo.TeamCount(ctx)
	if err != nil {
		return nil, err
	}
	team, err := repo.CreateTeam(ctx, wordlist.TeamName(int(count)+1))
	if err != nil {
		return nil, err
	}
	e.logger.Infow("started new team", "team_id", team.ID, "team_name", team.Name)
	return team, nil
}
