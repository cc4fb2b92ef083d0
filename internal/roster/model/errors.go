package model

import "errors"

var (
	// ErrInvalidNickname indicates an empty or oversized nickname.
	ErrInvalidNickname = errors.New("nickname must be between 1 and 20 characters")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrPlayerNotFound indicates that the requested player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrGroupNotFound indicates that the group code is unknown.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupComplete indicates the group was already assembled into a team.
	ErrGroupComplete = errors.New("group is already complete")
	// ErrGroupFull indicates the group already has seven players.
	ErrGroupFull = errors.New("group is already full")
	// ErrNotEnoughTeams indicates a rotation was requested without both
	// on-field slots occupied.
	ErrNotEnoughTeams = errors.New("need two teams on the field to rotate")
	// ErrInvalidSlot indicates a winner slot outside 1 and 2.
	ErrInvalidSlot = errors.New("winner slot must be 1 or 2")
	// ErrCodeCollision indicates group code generation kept colliding with
	// existing codes.
	ErrCodeCollision = errors.New("could not generate a unique group code")
)
