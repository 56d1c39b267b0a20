package domain

// BookRef is the embedded book summary the backend returns on transactions.
type BookRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// StudentRef is the embedded borrower summary on transactions.
type StudentRef struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	RegisterNumber string `json:"registerNumber"`
}

// Transaction is one issue/return cycle of a single copy.
type Transaction struct {
	ID         string     `json:"_id"`
	Book       BookRef    `json:"book"`
	Student    StudentRef `json:"student"`
	CopyID     string     `json:"copyId"`
	IssueDate  string     `json:"issueDate"`
	DueDate    string     `json:"dueDate"`
	ReturnDate string     `json:"returnDate"`
	Fine       float64    `json:"fine"`
	IsFinePaid bool       `json:"isFinePaid"`
}

// Returned reports whether the copy has come back to the shelf.
func (t *Transaction) Returned() bool { return t.ReturnDate != "" }

// IssueRequest asks the backend to issue a copy to a borrower.
type IssueRequest struct {
	RegisterNumber string `json:"registerNumber"`
	ISBN           string `json:"isbn"`
}

// Validate checks that the request is well-formed.
func (r *IssueRequest) Validate() error {
	if r.RegisterNumber == "" {
		return ErrValidation("register number is required")
	}
	if r.ISBN == "" {
		return ErrValidation("ISBN is required")
	}
	return nil
}

// ReturnRequest asks the backend to accept a copy back.
type ReturnRequest struct {
	CopyID string `json:"copyId"`
}

// Validate checks that the request is well-formed.
func (r *ReturnRequest) Validate() error {
	if r.CopyID == "" {
		return ErrValidation("copy id is required")
	}
	return nil
}

// DashboardStats is the circulation summary shown on staff/admin dashboards.
type DashboardStats struct {
	TotalBooks    int            `json:"totalBooks"`
	TotalStudents int            `json:"totalStudents"`
	IssuedCount   int            `json:"issuedCount"`
	OverdueCount  int            `json:"overdueCount"`
	DeptActivity  map[string]int `json:"deptActivity"`
}
