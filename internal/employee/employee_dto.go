package employee

type CreateEmployeeRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	BirthDate  string `json:"birth_date" binding:"required"`
	BirthPlace string `json:"birth_place"`

	Grade    string `json:"grade" binding:"required"`
	Fonction string `json:"fonction" binding:"required"`
	Category string `json:"category" binding:"omitempty,oneof=ENSEIGNANT ADMINISTRATIF TECHNIQUE OUVRIER"`
	Service  string `json:"service"`

	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIF DEMISSION RETRAITE"`

	IdentityDocNumber string `json:"identity_doc_number"`
	IdentityDocDate   string `json:"identity_doc_date"`
	IdentityDocPlace  string `json:"identity_doc_place"`
}

type UpdateEmployeeRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	BirthDate  string `json:"birth_date" binding:"required"`
	BirthPlace string `json:"birth_place"`

	Grade    string `json:"grade" binding:"required"`
	Fonction string `json:"fonction" binding:"required"`
	Category string `json:"category" binding:"omitempty,oneof=ENSEIGNANT ADMINISTRATIF TECHNIQUE OUVRIER"`
	Service  string `json:"service"`

	HireDate         string `json:"hire_date" binding:"required"`
	DepartureDate    string `json:"departure_date"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIF DEMISSION RETRAITE"`

	IdentityDocNumber string `json:"identity_doc_number"`
	IdentityDocDate   string `json:"identity_doc_date"`
	IdentityDocPlace  string `json:"identity_doc_place"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`

	Grade    string `json:"grade"`
	Fonction string `json:"fonction"`
	Category string `json:"category"`
	Service  string `json:"service,omitempty"`

	HireDate         string `json:"hire_date"`
	DepartureDate    string `json:"departure_date,omitempty"`
	EmploymentStatus string `json:"employment_status"`

	IdentityDocNumber string `json:"identity_doc_number,omitempty"`
	IdentityDocDate   string `json:"identity_doc_date,omitempty"`
	IdentityDocPlace  string `json:"identity_doc_place,omitempty"`

	CreatedByID string `json:"created_by_id,omitempty"`
}
