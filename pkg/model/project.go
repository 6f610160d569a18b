package model

import (
	"time"

	"github.com/google/uuid"
)

// Project groups secrets under a tenant and is tagged with an environment.
type Project struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID   `gorm:"column:tenant_id;type:uuid;not null" json:"tenantId"`
	Name        string      `gorm:"column:name;not null" json:"name"`
	Description string      `gorm:"column:description" json:"description"`
	Environment Environment `gorm:"column:environment;type:text" json:"environment"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	Animas []Anima `gorm:"foreignKey:ProjectID" json:"animas,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
