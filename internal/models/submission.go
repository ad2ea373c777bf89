package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is the audit row written after each relay attempt.
type Submission struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	RequestID  string         `gorm:"type:text;index"`
	Name       string         `gorm:"type:text;not null"`
	Email      string         `gorm:"type:text;not null"`
	Message    string         `gorm:"type:text;not null"`
	Provider   string         `gorm:"type:varchar(50);not null"`
	Status     string         `gorm:"type:varchar(20);not null;index"`
	ProviderID string         `gorm:"type:text"`
	HTTPStatus int            `gorm:"not null"`
	Error      string         `gorm:"type:text"`
	Meta       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (Submission) TableName() string {
	return "contact_submissions"
}
