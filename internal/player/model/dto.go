// Package model defines request types for player endpoints.
package model

// JoinSoloRequest is the body for POST /api/players.
type JoinSoloRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}
