package activity

import (
	"time"

	"github.com/google/uuid"
)

// Action types recorded in the log.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionView   = "VIEW"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
	ActionOther  = "OTHER"
)

// Entity types an activity entry can point at.
const (
	EntityUser        = "USER"
	EntityEmployee    = "EMPLOYEE"
	EntityAttestation = "ATTESTATION"
	EntityMission     = "MISSION"
	EntitySystem      = "SYSTEM"
)

// ActivityLog rows are append-only: there is no update or delete path
// anywhere in the codebase.
type ActivityLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID `gorm:"type:uuid;index:idx_activity_user_time"`
	UserEmail   string     `gorm:"type:varchar(255)"`
	ActionType  string     `gorm:"type:varchar(10);index"`
	EntityType  string     `gorm:"type:varchar(15);index"`
	EntityID    *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"type:text"`
	IPAddress   string     `gorm:"type:varchar(45)"`
	UserAgent   string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"index:idx_activity_user_time"`
}
