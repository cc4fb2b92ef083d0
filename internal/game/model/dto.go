// Package model defines request types for game endpoints.
package model

// WinRequest is the body for POST /api/game/win. WinnerSlot names the
// on-field slot (1 or 2) that won the match.
type WinRequest struct {
	WinnerSlot int `json:"winnerSlot" binding:"required"`
}
