package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the top-level organization boundary. It owns projects and
// API keys; it is never deleted in-band (cascade delete happens at the
// storage layer only).
type Tenant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Projects []Project `gorm:"foreignKey:TenantID" json:"projects,omitempty"`
}

func (Tenant) TableName() string {
	return "tenants"
}
