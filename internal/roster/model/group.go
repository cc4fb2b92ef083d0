package model

import "time"

// Group represents a friend group assembling under a shared join code.
// Once the seventh player joins, the group is converted into a team and
// never reopened.
type Group struct {
	Code       string    `gorm:"primaryKey;column:code;type:varchar(8)" json:"code"`
	IsComplete bool      `gorm:"column:is_complete;not null;default:false" json:"isComplete"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
