package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionID is the primary key of the single stored session row.
const SessionID = 1

// SessionModel represents the database persistence model for the signed-in session.
type SessionModel struct {
	ID        uint           `gorm:"primarykey"`
	Token     string         `gorm:"type:text;not null"`
	Identity  datatypes.JSON `gorm:"type:json;not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
