package mission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transport means accepted on mission orders and their stages.
const (
	TransportServiceCar  = "VOITURE"
	TransportPersonalCar = "VOITURE_PERSONNELLE"
	TransportPlane       = "AVION"
	TransportTrain       = "TRAIN"
	TransportPublic      = "TRANSPORT_COMMUN"
	TransportOther       = "AUTRE"
)

const (
	StatusIssued    = "ISSUED"
	StatusCancelled = "CANCELLED"
)

const defaultDeparturePlace = "Alger"

type MissionOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference  string    `gorm:"type:varchar(50);uniqueIndex:uq_mission_reference"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Purpose          string    `gorm:"type:varchar(500);not null"`
	DeparturePlace   string    `gorm:"type:varchar(100);not null;default:'Alger'"`
	DestinationPlace string    `gorm:"type:varchar(100);not null"`
	DepartureAt      time.Time `gorm:"not null"`
	ReturnAt         time.Time `gorm:"not null"`
	Transport        string    `gorm:"type:varchar(30);not null"`

	// Advance amounts are stored in centimes to avoid floating errors.
	AdvanceAmount    *int64     `gorm:"type:bigint"`
	AdvanceReference string     `gorm:"type:varchar(50)"`
	AdvanceDate      *time.Time `gorm:"type:date"`
	AdvancePlace     string     `gorm:"type:varchar(100)"`

	LodgingNights int16 `gorm:"not null;default:0"`
	DurationDays  int16 `gorm:"not null;default:1"`
	DurationHours int16 `gorm:"not null;default:0"`

	IssuingOfficer string `gorm:"type:varchar(100);not null"`
	Status         string `gorm:"type:varchar(10);default:'ISSUED'"`

	CreatedByID uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Employee *MissionEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
	Stages   []MissionStage   `gorm:"foreignKey:MissionOrderID"`
}

// MissionStage is one leg of the trip (outbound, return or a layover).
type MissionStage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	MissionOrderID uuid.UUID `gorm:"type:uuid;not null;index"`

	DeparturePlace string    `gorm:"type:varchar(100);not null"`
	ArrivalPlace   string    `gorm:"type:varchar(100);not null"`
	DepartureAt    time.Time `gorm:"not null"`
	ArrivalAt      time.Time `gorm:"not null"`
	Transport      string    `gorm:"type:varchar(30);not null"`

	CreatedAt time.Time
}

// MissionEmployee joins the minimal employee columns needed for search
// and display.
type MissionEmployee struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (MissionEmployee) TableName() string {
	return "employees"
}
