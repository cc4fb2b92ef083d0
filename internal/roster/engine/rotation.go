package engine

import (
	"context"
	"errors"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
	"github.com/danilkaz/pickup-queue/internal/roster/repository"
)

// DeclareWin rotates after a result: the winner holds slot 1, the loser is
// re-enqueued at the absolute back, and the front of the line is promoted
// into slot 2 with everyone behind shifted up to close the gap.
//
// With nobody waiting, a lone losing team simply swaps back onto slot 2;
// it is never parked behind a vacant slot. A team left alone in the line
// after the loser re-enqueues is not auto-promoted either: promotion only
// happens through rotation.
func (e *Engine) DeclareWin(ctx context.Context, winnerSlot int) (*WinResult, error) {
	if winnerSlot != model.SlotOne && winnerSlot != model.SlotTwo {
		return nil, model.ErrInvalidSlot
	}
	loserSlot := model.SlotOne + model.SlotTwo - winnerSlot

	var result *WinResult
	err := e.mutate(ctx, func(repo repository.Repository) error {
		winner, err := onFieldTeam(ctx, repo, winnerSlot)
		if err != nil {
			return err
		}
		loser, err := onFieldTeam(ctx, repo, loserSlot)
		if err != nil {
			return err
		}

		queued, err := repo.QueuedTeams(ctx)
		if err != nil {
			return err
		}

		if err := repo.SetQueuePosition(ctx, winner.ID, model.SlotOne); err != nil {
			return err
		}

		if len(queued) == 0 {
			// Nobody waiting: loser stays on for another game.
			if err := repo.SetQueuePosition(ctx, loser.ID, model.SlotTwo); err != nil {
				return err
			}
		} else {
			// Front of the line comes on, the rest close ranks,
			// loser takes the back.
			if err := repo.SetQueuePosition(ctx, queued[0].ID, model.SlotTwo); err != nil {
				return err
			}
			for i := 1; i < len(queued); i++ {
				if err := repo.SetQueuePosition(ctx, queued[i].ID, i+model.SlotTwo); err != nil {
					return err
				}
			}
			if err := repo.SetQueuePosition(ctx, loser.ID, len(queued)+model.SlotTwo); err != nil {
				return err
			}
		}

		result = &WinResult{Winner: winner.Name, Loser: loser.Name}
		e.logger.Infow("win declared",
			"winner", winner.Name, "loser", loser.Name, "queued", len(queued))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeclareDraw sends both on-field teams to the back of the line, former
// slot-1 team first, and promotes the next two waiting teams. With a single
// team waiting it takes slot 1 and the outgoing teams refill slots 2 and 3;
// with nobody waiting the two teams swap slots.
func (e *Engine) DeclareDraw(ctx context.Context) (*DrawResult, error) {
	var result *DrawResult
	err := e.mutate(ctx, func(repo repository.Repository) error {
		teamOne, err := onFieldTeam(ctx, repo, model.SlotOne)
		if err != nil {
			return err
		}
		teamTwo, err := onFieldTeam(ctx, repo, model.SlotTwo)
		if err != nil {
			return err
		}

		queued, err := repo.QueuedTeams(ctx)
		if err != nil {
			return err
		}

		switch {
		case len(queued) >= 2:
			if err := repo.SetQueuePosition(ctx, queued[0].ID, model.SlotOne); err != nil {
				return err
			}
			if err := repo.SetQueuePosition(ctx, queued[1].ID, model.SlotTwo); err != nil {
				return err
			}
			for i := 2; i < len(queued); i++ {
				if err := repo.SetQueuePosition(ctx, queued[i].ID, i+1); err != nil {
					return err
				}
			}
			if err := repo.SetQueuePosition(ctx, teamOne.ID, len(queued)+1); err != nil {
				return err
			}
			if err := repo.SetQueuePosition(ctx, teamTwo.ID, len(queued)+2); err != nil {
				return err
			}

		case len(queued) == 1:
			if err := repo.SetQueuePosition(ctx, queued[0].ID, model.SlotOne); err != nil {
				return err
			}
			if err := repo.SetQueuePosition(ctx, teamOne.ID, model.SlotTwo); err != nil {
				return err
			}
			if err := repo.SetQueuePosition(ctx, teamTwo.ID, model.FirstQueuedPosition); err != nil {
				return err
			}

		default:
			if err := repo.SetQueuePosition(ctx, teamTwo.ID, model.SlotOne); err != nil {
				return err
			}
			if err := repo.SetQueuePosition(ctx, teamOne.ID, model.SlotTwo); err != nil {
				return err
			}
		}

		result = &DrawResult{TeamOne: teamOne.Name, TeamTwo: teamTwo.Name}
		e.logger.Infow("draw declared",
			"team1", teamOne.Name, "team2", teamTwo.Name, "queued", len(queued))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// onFieldTeam fetches the occupant of a match slot, translating a vacant
// slot into the rotation precondition failure.
func onFieldTeam(ctx context.Context, repo repository.Repository, slot int) (*model.Team, error) {
	team, err := repo.TeamAtPosition(ctx, slot)
	if errors.Is(err, model.ErrTeamNotFound) {
		return nil, model.ErrNotEnoughTeams
	}
	return team, err
}
