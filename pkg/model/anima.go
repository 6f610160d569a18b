package model

import (
	"time"

	"github.com/google/uuid"
)

// Anima is a single named secret value within a project. The definition is
// the logical key: unique within its project under case-insensitive
// comparison, but stored with the casing used at creation. The value is
// held in cleartext; the authenticated channel is the protection boundary.
type Anima struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;not null" json:"projectId"`
	Definition  string    `gorm:"column:definition;not null" json:"definition"`
	Value       string    `gorm:"column:value;not null" json:"value"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Anima) TableName() string {
	return "animas"
}
