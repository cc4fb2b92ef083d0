package model

import "time"

// Player represents a signed-up player. TeamID is nil while the player
// waits for their friend group to assemble.
type Player struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Nickname  string    `gorm:"column:nickname;type:varchar(20);not null" json:"nickname"`
	TeamID    *uint     `gorm:"column:team_id" json:"teamId,omitempty"`
	GroupCode *string   `gorm:"column:group_code;type:varchar(8)" json:"groupCode,omitempty"`
	JoinedAt  time.Time `gorm:"column:joined_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}
