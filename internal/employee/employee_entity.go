package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employment statuses.
const (
	StatusActive   = "ACTIF"
	StatusResigned = "DEMISSION"
	StatusRetired  = "RETRAITE"
)

// Employee categories.
const (
	CategoryTeaching  = "ENSEIGNANT"
	CategoryAdmin     = "ADMINISTRATIF"
	CategoryTechnical = "TECHNIQUE"
	CategoryWorker    = "OUVRIER"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"type:varchar(50);not null"`
	LastName  string    `gorm:"type:varchar(50);not null"`

	BirthDate  time.Time `gorm:"type:date"`
	BirthPlace string    `gorm:"type:varchar(100)"`

	Grade    string `gorm:"type:varchar(100)"`
	Fonction string `gorm:"type:varchar(100)"`
	Category string `gorm:"type:varchar(20);default:'ADMINISTRATIF';index"`
	Service  string `gorm:"type:varchar(100)"`

	HireDate         time.Time  `gorm:"type:date"`
	DepartureDate    *time.Time `gorm:"type:date"`
	EmploymentStatus string     `gorm:"type:varchar(10);default:'ACTIF';index"`

	IdentityDocNumber string     `gorm:"type:varchar(50)"`
	IdentityDocDate   *time.Time `gorm:"type:date"`
	IdentityDocPlace  string     `gorm:"type:varchar(100)"`

	CreatedByID uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
