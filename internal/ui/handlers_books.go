package ui

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

const maxUploadBytes = 2 << 20

func (h *Handler) BooksList(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	books, err := h.Backend.ListBooks(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.booksListPage(p, books, csrfToken(r)))
}

// LibraryBrowse is the student-facing read-only view of the catalog.
func (h *Handler) LibraryBrowse(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	books, err := h.Backend.ListBooks(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.libraryBrowsePage(p, books, csrfToken(r)))
}

func (h *Handler) BooksNewPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	renderHTML(w, http.StatusOK, h.booksNewPage(p, csrfToken(r)))
}

func (h *Handler) BooksCreate(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	req := domain.CreateBookRequest{
		Title:      formString(r.Form, "title"),
		Author:     formString(r.Form, "author"),
		ISBN:       formString(r.Form, "isbn"),
		Category:   formString(r.Form, "category"),
		Department: formString(r.Form, "department"),
		Publisher:  formString(r.Form, "publisher"),
		Copies:     formInt(r.Form, "copies", 1),
	}
	if err := req.Validate(); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Backend.CreateBook(r.Context(), p.Token, req); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *Handler) BooksAddCopy(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	bookID := chi.URLParam(r, "bookID")
	if err := h.Backend.AddBookCopy(r.Context(), p.Token, bookID); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *Handler) BooksBulkDelete(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	ids := r.Form["selected"]
	if len(ids) == 0 {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}
	if err := h.Backend.BulkDeleteBooks(r.Context(), p.Token, ids); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *Handler) BooksUpload(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	payload, err := readUploadedFile(r, "file")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Backend.UploadBooks(r.Context(), p.Token, payload); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func readUploadedFile(r *http.Request, field string) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, domain.ErrValidation("upload must be a CSV file under 2 MB")
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, domain.ErrValidation("missing upload file")
	}
	defer file.Close()
	payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, domain.ErrValidation("could not read upload file")
	}
	if len(payload) == 0 {
		return nil, domain.ErrValidation("upload file is empty")
	}
	return payload, nil
}
