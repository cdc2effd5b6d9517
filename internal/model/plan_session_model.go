package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanSession stores the whole conversation state as one JSON document plus
// the fields the operator surface filters on. Version backs the
// compare-and-swap update.
type PlanSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Stage     string         `gorm:"type:text;not null;index"`
	State     datatypes.JSON `gorm:"not null"`
	Version   int64          `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (PlanSession) TableName() string {
	return "plan_sessions"
}
