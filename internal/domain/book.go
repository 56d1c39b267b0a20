package domain

// Book is a title in the inventory, with copy counts maintained by the backend.
type Book struct {
	ID              string `json:"_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	Department      string `json:"department"`
	Publisher       string `json:"publisher"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

// CreateBookRequest holds the fields for registering a new title.
type CreateBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	Category   string `json:"category"`
	Department string `json:"department"`
	Publisher  string `json:"publisher"`
	Copies     int    `json:"copies"`
}

// Validate checks that the request is well-formed.
func (r *CreateBookRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("book title is required")
	}
	if r.ISBN == "" {
		return ErrValidation("ISBN is required")
	}
	if r.Copies < 1 {
		r.Copies = 1
	}
	return nil
}
