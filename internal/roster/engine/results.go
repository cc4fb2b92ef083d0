package engine

import "github.com/danilkaz/pickup-queue/internal/roster/model"

// SoloResult describes where a solo signup ended up.
type SoloResult struct {
	PlayerID      uint   `json:"id"`
	Nickname      string `json:"nickname"`
	TeamID        uint   `json:"teamId"`
	TeamName      string `json:"teamName"`
	PlayersNeeded int    `json:"playersNeeded"`
	QueuePosition *int   `json:"queuePosition,omitempty"`
	TeamComplete  bool   `json:"teamComplete"`
}

// Formation describes a team created from a completed group.
type Formation struct {
	TeamID        uint   `json:"teamId"`
	TeamName      string `json:"teamName"`
	QueuePosition int    `json:"queuePosition"`
}

// GroupStatus is the current membership of a friend group.
type GroupStatus struct {
	Code        string         `json:"code"`
	IsComplete  bool           `json:"isComplete"`
	Players     []model.Player `json:"players"`
	SlotsNeeded int            `json:"slotsNeeded"`
}

// GroupJoinResult describes a successful group join, including the
// formation outcome when this was the seventh member.
type GroupJoinResult struct {
	PlayerID    uint           `json:"id"`
	Nickname    string         `json:"nickname"`
	GroupCode   string         `json:"groupCode"`
	Players     []model.Player `json:"players"`
	SlotsNeeded int            `json:"slotsNeeded"`
	Assignment  *Formation     `json:"assignment,omitempty"`
}

// WinResult names the teams involved in a win rotation.
type WinResult struct {
	Winner string `json:"winnerName"`
	Loser  string `json:"loserName"`
}

// DrawResult names the two teams sent off after a draw.
type DrawResult struct {
	TeamOne string `json:"team1Name"`
	TeamTwo string `json:"team2Name"`
}

// RemovePlayerResult reports whether removing a player took its team with it.
type RemovePlayerResult struct {
	TeamRemoved bool `json:"teamRemoved"`
}

// GameState is the externally visible view of the night: who is playing,
// who is waiting and who is still forming.
type GameState struct {
	OnField       []model.Team `json:"onField"`
	Queued        []model.Team `json:"queued"`
	Forming       []model.Team `json:"forming"`
	TotalComplete int          `json:"totalComplete"`
	CanPlay       bool         `json:"canPlay"`
}
