package attestation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document statuses.
const (
	StatusIssued    = "ISSUED"
	StatusCancelled = "CANCELLED"
)

const defaultIssuer = "Director of the school"

type Attestation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference  string    `gorm:"type:varchar(50);uniqueIndex:uq_attestation_reference"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	IssueDate  time.Time `gorm:"type:date"`
	Issuer     string    `gorm:"type:varchar(100)"`
	Status     string    `gorm:"type:varchar(10);default:'ISSUED'"`

	CreatedByID uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *AttestationEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

// AttestationEmployee joins the minimal employee columns needed for
// search and display.
type AttestationEmployee struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (AttestationEmployee) TableName() string {
	return "employees"
}
