package attestation

type CreateAttestationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Issuer     string `json:"issuer"`
}

type UpdateAttestationRequest struct {
	Issuer string `json:"issuer"`
	Status string `json:"status" binding:"omitempty,oneof=ISSUED CANCELLED"`
}

type AttestationResponse struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	EmployeeID  string `json:"employee_id"`
	IssueDate   string `json:"issue_date"`
	Issuer      string `json:"issuer"`
	Status      string `json:"status"`
	CreatedByID string `json:"created_by_id,omitempty"`

	Employee *AttestationEmployeeResponse `json:"employee,omitempty"`
}

type AttestationEmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
