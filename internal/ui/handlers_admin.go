package ui

import (
	"net/http"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) DepartmentsPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	departments, err := h.Backend.ListDepartments(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.departmentsPage(p, departments, csrfToken(r)))
}

func (h *Handler) DepartmentsCreate(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	name := formString(r.Form, "name")
	code := formString(r.Form, "code")
	if name == "" {
		h.renderServiceError(w, r, domain.ErrValidation("department name is required"))
		return
	}
	if err := h.Backend.CreateDepartment(r.Context(), p.Token, name, code); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *Handler) AuditPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	entries, err := h.Backend.AuditLogs(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.auditPage(p, entries, csrfToken(r)))
}

func (h *Handler) AuditClear(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := h.Backend.ClearAuditLogs(r.Context(), p.Token); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/audit", http.StatusSeeOther)
}

func (h *Handler) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	entries, err := h.Backend.ListFeedback(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.feedbackPage(p, entries, csrfToken(r)))
}

func (h *Handler) FeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	message := formString(r.Form, "message")
	if message == "" {
		h.renderServiceError(w, r, domain.ErrValidation("feedback message is required"))
		return
	}
	if err := h.Backend.SubmitFeedback(r.Context(), p.Token, message); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/feedback", http.StatusSeeOther)
}

func (h *Handler) FeedbackDelete(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	id := formString(r.Form, "id")
	if id == "" {
		http.Redirect(w, r, "/feedback", http.StatusSeeOther)
		return
	}
	if err := h.Backend.DeleteFeedback(r.Context(), p.Token, id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/feedback", http.StatusSeeOther)
}

func (h *Handler) RulesPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	rules, err := h.Backend.Rules(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.rulesPage(p, rules, csrfToken(r)))
}

// RulesUpdate is admin-only; routing enforces the role.
func (h *Handler) RulesUpdate(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	rules := domain.LibraryRules{
		FinePerDay:         formFloat(r.Form, "fine_per_day", 0),
		MaxBooksPerStudent: formInt(r.Form, "max_books", 0),
		IssueDaysLimit:     formInt(r.Form, "issue_days", 0),
		LibraryRules:       formString(r.Form, "rules_text"),
	}
	if err := h.Backend.UpdateRules(r.Context(), p.Token, rules); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/rules", http.StatusSeeOther)
}

func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	renderHTML(w, http.StatusOK, h.settingsPage(p, csrfToken(r)))
}
