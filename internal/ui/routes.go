package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kotresh021/frontendLMS/internal/domain"
	"github.com/Kotresh021/frontendLMS/internal/ui/assets"
)

// MountRoutes wires every view behind the session and guard middleware. The
// guard factory returns middleware enforcing the given roles; no roles means
// any signed-in user.
func MountRoutes(
	r chi.Router,
	h *Handler,
	restoreSession func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
	requireRoles func(roles ...domain.Role) func(http.Handler) http.Handler,
) {
	r.Use(h.EnsureCSRFToken)
	r.Use(restoreSession)

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/login", h.LoginPage)
	r.With(loginLimiter, h.RequireCSRF).Post("/login", h.LoginSubmit)

	// Any authenticated role.
	r.Group(func(r chi.Router) {
		r.Use(requireRoles())
		r.Use(h.RequireCSRF)
		r.Get("/", h.Home)
		r.Get("/dashboard", h.Home)
		r.Post("/logout", h.Logout)
		r.Post("/session/touch", h.SessionTouch)
		r.Get("/feedback", h.FeedbackPage)
		r.Post("/feedback", h.FeedbackSubmit)
		r.Get("/rules", h.RulesPage)
		r.Get("/settings", h.SettingsPage)
	})

	// Circulation desk: admins and staff.
	r.Group(func(r chi.Router) {
		r.Use(requireRoles(domain.RoleAdmin, domain.RoleStaff))
		r.Use(h.RequireCSRF)
		r.Get("/staff", h.StaffDashboard)
		r.Get("/circulation", h.CirculationPage)
		r.Post("/circulation/issue", h.CirculationIssue)
		r.Post("/circulation/return", h.CirculationReturn)
		r.Get("/books", h.BooksList)
		r.Get("/books/new", h.BooksNewPage)
		r.Post("/books", h.BooksCreate)
		r.Post("/books/{bookID}/copy", h.BooksAddCopy)
		r.Post("/books/bulk-delete", h.BooksBulkDelete)
		r.Post("/books/upload", h.BooksUpload)
		r.Get("/students", h.StudentsList)
		r.Get("/students/new", h.StudentsNewPage)
		r.Post("/students", h.StudentsCreate)
		r.Post("/students/bulk-update", h.StudentsBulkUpdate)
		r.Post("/students/upload", h.StudentsUpload)
		r.Get("/fines", h.FinesPage)
		r.Get("/history", h.HistoryPage)
		r.Get("/history/export", h.HistoryExport)
	})

	// Administration.
	r.Group(func(r chi.Router) {
		r.Use(requireRoles(domain.RoleAdmin))
		r.Use(h.RequireCSRF)
		r.Get("/admin", h.AdminDashboard)
		r.Get("/staff-manage", h.StaffList)
		r.Get("/staff-manage/new", h.StaffNewPage)
		r.Post("/staff-manage", h.StaffCreate)
		r.Get("/admin-manage", h.AdminsList)
		r.Get("/admin-manage/new", h.AdminsNewPage)
		r.Post("/admin-manage", h.AdminsCreate)
		r.Get("/departments", h.DepartmentsPage)
		r.Post("/departments", h.DepartmentsCreate)
		r.Get("/audit", h.AuditPage)
		r.Post("/audit/clear", h.AuditClear)
		r.Post("/history/clear", h.HistoryClear)
		r.Post("/feedback/delete", h.FeedbackDelete)
		r.Post("/rules", h.RulesUpdate)
	})

	// Student self-service.
	r.Group(func(r chi.Router) {
		r.Use(requireRoles(domain.RoleStudent))
		r.Use(h.RequireCSRF)
		r.Get("/student", h.StudentDashboard)
		r.Get("/my-books", h.MyBooksPage)
		r.Get("/library", h.LibraryBrowse)
	})
}
