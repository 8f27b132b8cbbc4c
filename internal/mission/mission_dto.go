package mission

type CreateMissionRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required,uuid"`
	Purpose          string `json:"purpose" binding:"required,max=500"`
	DeparturePlace   string `json:"departure_place" binding:"omitempty,max=100"`
	DestinationPlace string `json:"destination_place" binding:"required,max=100"`
	DepartureAt      string `json:"departure_at" binding:"required"`
	ReturnAt         string `json:"return_at" binding:"required"`
	Transport        string `json:"transport" binding:"required,oneof=VOITURE VOITURE_PERSONNELLE AVION TRAIN TRANSPORT_COMMUN AUTRE"`

	AdvanceAmount    *int64 `json:"advance_amount" binding:"omitempty,min=0"`
	AdvanceReference string `json:"advance_reference" binding:"omitempty,max=50"`
	AdvanceDate      string `json:"advance_date" binding:"omitempty"`
	AdvancePlace     string `json:"advance_place" binding:"omitempty,max=100"`

	LodgingNights int16 `json:"lodging_nights" binding:"omitempty,min=0"`
	DurationDays  int16 `json:"duration_days" binding:"omitempty,min=1"`
	DurationHours int16 `json:"duration_hours" binding:"omitempty,min=0,max=23"`

	IssuingOfficer string `json:"issuing_officer" binding:"required,max=100"`

	Stages []CreateStageRequest `json:"stages" binding:"omitempty,dive"`
}

type UpdateMissionRequest struct {
	Purpose          string `json:"purpose" binding:"omitempty,max=500"`
	DeparturePlace   string `json:"departure_place" binding:"omitempty,max=100"`
	DestinationPlace string `json:"destination_place" binding:"omitempty,max=100"`
	DepartureAt      string `json:"departure_at"`
	ReturnAt         string `json:"return_at"`
	Transport        string `json:"transport" binding:"omitempty,oneof=VOITURE VOITURE_PERSONNELLE AVION TRAIN TRANSPORT_COMMUN AUTRE"`

	AdvanceAmount    *int64 `json:"advance_amount" binding:"omitempty,min=0"`
	AdvanceReference string `json:"advance_reference" binding:"omitempty,max=50"`
	AdvanceDate      string `json:"advance_date"`
	AdvancePlace     string `json:"advance_place" binding:"omitempty,max=100"`

	LodgingNights *int16 `json:"lodging_nights" binding:"omitempty,min=0"`
	DurationDays  *int16 `json:"duration_days" binding:"omitempty,min=1"`
	DurationHours *int16 `json:"duration_hours" binding:"omitempty,min=0,max=23"`

	IssuingOfficer string `json:"issuing_officer" binding:"omitempty,max=100"`
	Status         string `json:"status" binding:"omitempty,oneof=ISSUED CANCELLED"`
}

type CreateStageRequest struct {
	DeparturePlace string `json:"departure_place" binding:"required,max=100"`
	ArrivalPlace   string `json:"arrival_place" binding:"required,max=100"`
	DepartureAt    string `json:"departure_at" binding:"required"`
	ArrivalAt      string `json:"arrival_at" binding:"required"`
	Transport      string `json:"transport" binding:"required,oneof=VOITURE VOITURE_PERSONNELLE AVION TRAIN TRANSPORT_COMMUN AUTRE"`
}

type MissionResponse struct {
	ID         string `json:"id"`
	Reference  string `json:"reference"`
	EmployeeID string `json:"employee_id"`

	Purpose          string `json:"purpose"`
	DeparturePlace   string `json:"departure_place"`
	DestinationPlace string `json:"destination_place"`
	DepartureAt      string `json:"departure_at"`
	ReturnAt         string `json:"return_at"`
	Transport        string `json:"transport"`

	AdvanceAmount    *int64 `json:"advance_amount,omitempty"`
	AdvanceReference string `json:"advance_reference,omitempty"`
	AdvanceDate      string `json:"advance_date,omitempty"`
	AdvancePlace     string `json:"advance_place,omitempty"`

	LodgingNights int16 `json:"lodging_nights"`
	DurationDays  int16 `json:"duration_days"`
	DurationHours int16 `json:"duration_hours"`

	IssuingOfficer string `json:"issuing_officer"`
	Status         string `json:"status"`
	CreatedByID    string `json:"created_by_id,omitempty"`

	Employee *MissionEmployeeResponse `json:"employee,omitempty"`
	Stages   []StageResponse          `json:"stages,omitempty"`
}

type StageResponse struct {
	ID             string `json:"id"`
	DeparturePlace string `json:"departure_place"`
	ArrivalPlace   string `json:"arrival_place"`
	DepartureAt    string `json:"departure_at"`
	ArrivalAt      string `json:"arrival_at"`
	Transport      string `json:"transport"`
}

type MissionEmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
