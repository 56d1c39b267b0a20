package domain

// Department groups students and titles for reporting.
type Department struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Feedback is a message from any role to the library desk.
type Feedback struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Message   string `json:"message"`
	Reply     string `json:"reply"`
	CreatedAt string `json:"createdAt"`
}

// AuditEntry is one backend-recorded administrative action.
type AuditEntry struct {
	ID        string `json:"_id"`
	Action    string `json:"action"`
	ActorName string `json:"actorName"`
	Details   string `json:"details"`
	CreatedAt string `json:"createdAt"`
}

// LibraryRules holds the circulation policy values the backend enforces.
// The portal only displays and edits them.
type LibraryRules struct {
	FinePerDay         float64 `json:"finePerDay"`
	MaxBooksPerStudent int     `json:"maxBooksPerStudent"`
	IssueDaysLimit     int     `json:"issueDaysLimit"`
	LibraryRules       string  `json:"libraryRules"`
}
