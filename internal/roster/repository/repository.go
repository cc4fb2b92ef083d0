// Package repository provides the data access layer for the roster:
// teams, players and friend groups.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/danilkaz/pickup-queue/internal/roster/model"
)

// Repository defines the storage operations the queue engine is built on.
// The engine rebuilds a Repository over the transaction handle inside every
// mutation, so implementations must be safe to construct per call.
type Repository interface {
	// CreateTeam creates a new forming team.
	CreateTeam(ctx context.Context, name string) (*model.Team, error)

	// TeamByID finds a team by id.
	TeamByID(ctx context.Context, id uint) (*model.Team, error)

	// TeamAtPosition returns the team docked at the given queue position.
	TeamAtPosition(ctx context.Context, position int) (*model.Team, error)

	// TeamCount returns the number of teams currently present.
	TeamCount(ctx context.Context) (int64, error)

	// OldestJoinableTeam returns the earliest-created team that is not
	// on-field and has room for another player.
	OldestJoinableTeam(ctx context.Context) (*model.Team, error)

	// OnFieldTeams returns the teams at slots 1 and 2, slot order, players loaded.
	OnFieldTeams(ctx context.Context) ([]model.Team, error)

	// QueuedTeams returns the waiting line in ascending position order, players loaded.
	QueuedTeams(ctx context.Context) ([]model.Team, error)

	// FormingTeams returns teams without a queue position, players loaded.
	FormingTeams(ctx context.Context) ([]model.Team, error)

	// PlayerCount returns the number of players on a team.
	PlayerCount(ctx context.Context, teamID uint) (int, error)

	// MaxQueuePosition returns the highest queue position in use, 0 if none.
	MaxQueuePosition(ctx context.Context) (int, error)

	// SetQueuePosition docks a team at a queue position.
	SetQueuePosition(ctx context.Context, teamID uint, position int) error

	// ClearQueuePosition demotes a team back to forming.
	ClearQueuePosition(ctx context.Context, teamID uint) error

	// CloseGap shifts every team docked after the given position down by one,
	// restoring contiguity after a removal or promotion.
	CloseGap(ctx context.Context, fromPosition int) error

	// DeleteTeam deletes a team record.
	DeleteTeam(ctx context.Context, id uint) error

	// DeleteTeamPlayers deletes all players owned by a team.
	DeleteTeamPlayers(ctx context.Context, teamID uint) error

	// CreatePlayer creates a player, optionally pending under a group code.
	CreatePlayer(ctx context.Context, nickname string, groupCode *string) (*model.Player, error)

	// PlayerByID finds a player by id.
	PlayerByID(ctx context.Context, id uint) (*model.Player, error)

	// AssignPlayerToTeam attaches a player to a team.
	AssignPlayerToTeam(ctx context.Context, playerID, teamID uint) error

	// DeletePlayer deletes a player record.
	DeletePlayer(ctx context.Context, id uint) error

	// CreateGroup persists a new incomplete group.
	CreateGroup(ctx context.Context, code string) (*model.Group, error)

	// GroupByCode finds a group by its join code.
	GroupByCode(ctx context.Context, code string) (*model.Group, error)

	// GroupPlayers returns a group's players in join order.
	GroupPlayers(ctx context.Context, code string) ([]model.Player, error)

	// AssignGroupToTeam attaches every player of a group to a team.
	AssignGroupToTeam(ctx context.Context, code string, teamID uint) error

	// MarkGroupComplete marks a group as assembled.
	MarkGroupComplete(ctx context.Context, code string) error

	// ResetAll wipes players, groups and teams.
	ResetAll(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new roster repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// withPlayers preloads a team's players in join order.
func withPlayers(db *gorm.DB) *gorm.DB {
	return db.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("joined_at ASC, id ASC")
	})
}

func (r *repository) CreateTeam(ctx context.Context, name string) (*model.Team, error) {
	team := &model.Team{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (r *repository) TeamByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	err := withPlayers(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) TeamAtPosition(ctx context.Context, position int) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("queue_position = ?", position).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) TeamCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Team{}).Count(&count).Error
	return count, err
}

func (r *repository) OldestJoinableTeam(ctx context.Context) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Select("teams.*").
		Joins("LEFT JOIN players ON players.team_id = teams.id").
		Where("teams.queue_position IS NULL OR teams.queue_position > ?", model.SlotTwo).
		Group("teams.id").
		Having("COUNT(players.id) < ?", model.TeamSize).
		Order("teams.created_at ASC").
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *repository) OnFieldTeams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := withPlayers(r.db.WithContext(ctx)).
		Where("queue_position IN ?", []int{model.SlotOne, model.SlotTwo}).
		Order("queue_position ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) QueuedTeams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := withPlayers(r.db.WithContext(ctx)).
		Where("queue_position > ?", model.SlotTwo).
		Order("queue_position ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) FormingTeams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := withPlayers(r.db.WithContext(ctx)).
		Where("queue_position IS NULL").
		Order("created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) PlayerCount(ctx context.Context, teamID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return int(count), err
}

func (r *repository) MaxQueuePosition(ctx context.Context) (int, error) {
	var maxPos *int
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Select("MAX(queue_position)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if maxPos == nil {
		return 0, nil
	}
	return *maxPos, nil
}

func (r *repository) SetQueuePosition(ctx context.Context, teamID uint, position int) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", teamID).
		Update("queue_position", position).Error
}

func (r *repository) ClearQueuePosition(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", teamID).
		Update("queue_position", nil).Error
}

func (r *repository) CloseGap(ctx context.Context, fromPosition int) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("queue_position > ?", fromPosition).
		Update("queue_position", gorm.Expr("queue_position - 1")).Error
}

func (r *repository) DeleteTeam(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Team{}, id).Error
}

func (r *repository) DeleteTeamPlayers(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&model.Player{}).Error
}

func (r *repository) CreatePlayer(ctx context.Context, nickname string, groupCode *string) (*model.Player, error) {
	player := &model.Player{
		Nickname:  nickname,
		GroupCode: groupCode,
		JoinedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, err
	}
	return player, nil
}

func (r *repository) PlayerByID(ctx context.Context, id uint) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *repository) AssignPlayerToTeam(ctx context.Context, playerID, teamID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("id = ?", playerID).
		Update("team_id", teamID).Error
}

func (r *repository) DeletePlayer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Player{}, id).Error
}

func (r *repository) CreateGroup(ctx context.Context, code string) (*model.Group, error) {
	group := &model.Group{
		Code:      code,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *repository) GroupByCode(ctx context.Context, code string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *repository) GroupPlayers(ctx context.Context, code string) ([]model.Player, error) {
	var players []model.Player
	err := r.db.WithContext(ctx).
		Where("group_code = ?", code).
		Order("joined_at ASC, id ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (r *repository) AssignGroupToTeam(ctx context.Context, code string, teamID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("group_code = ?", code).
		Update("team_id", teamID).Error
}

func (r *repository) MarkGroupComplete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("code = ?", code).
		Update("is_complete", true).Error
}

func (r *repository) ResetAll(ctx context.Context) error {
	// Players reference teams, so they go first.
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Player{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Group{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Team{}).Error
}
