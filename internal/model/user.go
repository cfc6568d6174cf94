package model

import "time"

// Role distinguishes the two sides of the plan/review protocol.
type Role string

const (
	RoleTrainee Role = "trainee"
	RoleTrainer Role = "trainer"
)

// User stores account metadata for trainees and trainers. Authentication
// happens in front of this service; here a user is an identity with a
// role and, for trainees, an assigned trainer.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string
	Email          string `gorm:"uniqueIndex"`
	Role           Role   `gorm:"type:varchar(10);index"`
	TrainerID      *uint  `gorm:"index"` // assigned trainer, trainees only
	TelegramChatID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
