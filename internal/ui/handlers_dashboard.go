package ui

import (
	"net/http"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

// Home sends an authenticated user to their role's dashboard.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	http.Redirect(w, r, p.Role.DashboardPath(), http.StatusSeeOther)
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.staffDashboard(w, r, "Admin Dashboard")
}

func (h *Handler) StaffDashboard(w http.ResponseWriter, r *http.Request) {
	h.staffDashboard(w, r, "Staff Dashboard")
}

func (h *Handler) staffDashboard(w http.ResponseWriter, r *http.Request, title string) {
	p := principalFromContext(r.Context())
	stats, err := h.Backend.DashboardStats(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.dashboardPage(title, p, stats, csrfToken(r)))
}

func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	history, err := h.Backend.StudentHistory(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	var active, overdue int
	var fineDue float64
	for i := range history {
		tx := &history[i]
		if !tx.Returned() {
			active++
		}
		if tx.Fine > 0 && !tx.IsFinePaid {
			overdue++
			fineDue += tx.Fine
		}
	}
	renderHTML(w, http.StatusOK, h.studentDashboardPage(p, active, overdue, fineDue, recentTransactions(history, 5), csrfToken(r)))
}

func recentTransactions(history []domain.Transaction, n int) []domain.Transaction {
	if len(history) <= n {
		return history
	}
	return history[:n]
}
