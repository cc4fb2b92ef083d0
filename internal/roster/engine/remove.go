package engine

import (
	"context"

	"github.com/danilkaz/pickup-queue/internal/roster/repository"
)

// RemoveTeam deletes a team and all its players. If the team held a queue
// position, everyone behind it shifts down one to close the gap; removing
// an on-field team promotes the line by one and leaves the other slot's
// occupant where it is.
func (e *Engine) RemoveTeam(ctx context.Context, id uint) error {
	return e.mutate(ctx, func(repo repository.Repository) error {
		return removeTeam(ctx, repo, id)
	})
}

// RemovePlayer detaches a player. The last player leaving takes the team
// with it; a positioned team dropping below seven players is pulled out of
// play entirely and demoted back to forming, with the gap closed behind it.
func (e *Engine) RemovePlayer(ctx context.Context, id uint) (*RemovePlayerResult, error) {
	var result *RemovePlayerResult
	err := e.mutate(ctx, func(repo repository.Repository) error {
		player, err := repo.PlayerByID(ctx, id)
		if err != nil {
			return err
		}

		result = &RemovePlayerResult{}

		if player.TeamID == nil {
			// Pending group member, nothing to cascade.
			return repo.DeletePlayer(ctx, id)
		}

		team, err := repo.TeamByID(ctx, *player.TeamID)
		if err != nil {
			return err
		}
		count, err := repo.PlayerCount(ctx, team.ID)
		if err != nil {
			return err
		}

		if err := repo.DeletePlayer(ctx, id); err != nil {
			return err
		}

		if count <= 1 {
			result.TeamRemoved = true
			return removeTeam(ctx, repo, team.ID)
		}

		if team.QueuePosition != nil {
			// Below seven players the team is no longer eligible for any
			// slot; it demotes to forming rather than moving to the back.
			position := *team.QueuePosition
			if err := repo.ClearQueuePosition(ctx, team.ID); err != nil {
				return err
			}
			if err := repo.CloseGap(ctx, position); err != nil {
				return err
			}
			e.logger.Infow("team demoted to forming",
				"team_id", team.ID, "team_name", team.Name, "freed_position", position)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reset wipes every team, player and group.
func (e *Engine) Reset(ctx context.Context) error {
	return e.mutate(ctx, func(repo repository.Repository) error {
		e.logger.Infow("resetting all teams, players and groups")
		return repo.ResetAll(ctx)
	})
}

func removeTeam(ctx context.Context, repo repository.Repository, id uint) error {
	team, err := repo.TeamByID(ctx, id)
	if err != nil {
		return err
	}

	if err := repo.DeleteTeamPlayers(ctx, team.ID); err != nil {
		return err
	}
	if err := repo.DeleteTeam(ctx, team.ID); err != nil {
		return err
	}

	if team.QueuePosition != nil {
		return repo.CloseGap(ctx, *team.QueuePosition)
	}
	return nil
}
