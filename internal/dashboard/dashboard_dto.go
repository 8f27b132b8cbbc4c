package dashboard

type RecentUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type RecentDocument struct {
	ID           string `json:"id"`
	Reference    string `json:"reference"`
	EmployeeName string `json:"employee_name"`
	Destination  string `json:"destination,omitempty"`
	IssuedAt     string `json:"issued_at"`
}

type RecentActivity struct {
	ID          string `json:"id"`
	UserEmail   string `json:"user_email"`
	ActionType  string `json:"action_type"`
	EntityType  string `json:"entity_type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type UserStats struct {
	TotalUsers  int64            `json:"total_users"`
	ActiveUsers int64            `json:"active_users"`
	UsersByRole map[string]int64 `json:"users_by_role"`
	RecentUsers []RecentUser     `json:"recent_users"`
}

type DocumentStats struct {
	TotalEmployees      int64            `json:"total_employees"`
	ActiveEmployees     int64            `json:"active_employees"`
	TotalAttestations   int64            `json:"total_attestations"`
	TotalMissions       int64            `json:"total_missions"`
	EmployeesByCategory map[string]int64 `json:"employees_by_category"`
	RecentAttestations  []RecentDocument `json:"recent_attestations"`
	RecentMissions      []RecentDocument `json:"recent_missions"`
}

type ActivityStats struct {
	ActivityByDate   map[string]int64 `json:"activity_by_date"`
	ActivityByType   map[string]int64 `json:"activity_by_type"`
	RecentActivities []RecentActivity `json:"recent_activities"`
}

type Summary struct {
	UserStats     UserStats     `json:"user_stats"`
	DocumentStats DocumentStats `json:"document_stats"`
	ActivityStats ActivityStats `json:"activity_stats"`
}
