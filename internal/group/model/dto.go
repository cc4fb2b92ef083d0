// Package model defines request types for group endpoints.
package model

// JoinGroupRequest is the body for POST /api/groups/:code/join.
type JoinGroupRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}
