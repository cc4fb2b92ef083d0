// Package model provides the roster domain models shared by every module.
package model

import "time"

// Slot positions with special meaning in the queue.
const (
	// SlotOne and SlotTwo are the two on-field positions.
	SlotOne = 1
	SlotTwo = 2
	// FirstQueuedPosition is where the waiting line starts.
	FirstQueuedPosition = 3
)

// TeamSize is the number of players a team needs before it can be queued.
const TeamSize = 7

// Team represents a team of players.
// QueuePosition is nil while the team is still forming, 1 or 2 while
// on-field, and >= 3 while waiting in line.
type Team struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	QueuePosition *int      `gorm:"column:queue_position" json:"queuePosition"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"-"`

	Players []Player `gorm:"foreignKey:TeamID" json:"players,omitempty"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// OnField reports whether the team occupies one of the two match slots.
func (t Team) OnField() bool {
	return t.QueuePosition != nil &&
		(*t.QueuePosition == SlotOne || *t.QueuePosition == SlotTwo)
}

// Queued reports whether the team is waiting in line.
func (t Team) Queued() bool {
	return t.QueuePosition != nil && *t.QueuePosition >= FirstQueuedPosition
}
