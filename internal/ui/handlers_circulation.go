package ui

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) CirculationPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	history, err := h.Backend.History(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.circulationPage(p, recentTransactions(history, 10), csrfToken(r)))
}

func (h *Handler) CirculationIssue(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	req := domain.IssueRequest{
		RegisterNumber: formString(r.Form, "register_number"),
		ISBN:           formString(r.Form, "isbn"),
	}
	if err := req.Validate(); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if _, err := h.Backend.IssueBook(r.Context(), p.Token, req); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/circulation", http.StatusSeeOther)
}

func (h *Handler) CirculationReturn(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	req := domain.ReturnRequest{CopyID: formString(r.Form, "copy_id")}
	if err := req.Validate(); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if _, err := h.Backend.ReturnBook(r.Context(), p.Token, req); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/circulation", http.StatusSeeOther)
}

func (h *Handler) FinesPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	fines, err := h.Backend.Fines(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.finesPage(p, fines, csrfToken(r)))
}

func (h *Handler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	history, err := h.Backend.History(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.historyPage(p, history, csrfToken(r)))
}

func (h *Handler) HistoryClear(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	start := formString(r.Form, "start")
	end := formString(r.Form, "end")
	if err := h.Backend.ClearHistory(r.Context(), p.Token, start, end); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

// HistoryExport streams the full circulation history as CSV.
func (h *Handler) HistoryExport(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	history, err := h.Backend.History(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="circulation-history.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"book", "isbn", "student", "register_number", "copy_id", "issued", "due", "returned", "fine", "fine_paid"})
	for i := range history {
		tx := &history[i]
		_ = cw.Write([]string{
			tx.Book.Title,
			tx.Book.ISBN,
			tx.Student.Name,
			tx.Student.RegisterNumber,
			tx.CopyID,
			shortDate(tx.IssueDate),
			shortDate(tx.DueDate),
			shortDate(tx.ReturnDate),
			fmt.Sprintf("%.2f", tx.Fine),
			strconv.FormatBool(tx.IsFinePaid),
		})
	}
	cw.Flush()
}

// MyBooksPage shows a student their own borrowing history.
func (h *Handler) MyBooksPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	history, err := h.Backend.StudentHistory(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.myBooksPage(p, history, csrfToken(r)))
}
