package activity

// Entry is what callers hand to the Recorder; the repository fills in the
// id and timestamp.
type Entry struct {
	UserID      string
	UserEmail   string
	ActionType  string
	EntityType  string
	EntityID    string
	Description string
	IPAddress   string
	UserAgent   string
}

type ActivityResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
	ActionType  string `json:"action_type"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id,omitempty"`
	Description string `json:"description"`
	IPAddress   string `json:"ip_address,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	CreatedAt   string `json:"created_at"`
}
