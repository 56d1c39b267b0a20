package ui

import (
	"net/http"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) StudentsList(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	students, err := h.Backend.ListStudents(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.studentsListPage(p, students, csrfToken(r)))
}

func (h *Handler) StaffList(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	staff, err := h.Backend.ListStaff(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.directoryListPage(p, "Staff", "staff-manage", "/staff-manage/new", csrfToken(r), staff))
}

func (h *Handler) AdminsList(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	admins, err := h.Backend.ListAdmins(r.Context(), p.Token)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, h.directoryListPage(p, "Admins", "admin-manage", "/admin-manage/new", csrfToken(r), admins))
}

func (h *Handler) StudentsNewPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	renderHTML(w, http.StatusOK, h.userNewPage(p, "New Student", "students", "/students", domain.RoleStudent, csrfToken(r)))
}

func (h *Handler) StaffNewPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	renderHTML(w, http.StatusOK, h.userNewPage(p, "New Staff Member", "staff-manage", "/staff-manage", domain.RoleStaff, csrfToken(r)))
}

func (h *Handler) AdminsNewPage(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	renderHTML(w, http.StatusOK, h.userNewPage(p, "New Admin", "admin-manage", "/admin-manage", domain.RoleAdmin, csrfToken(r)))
}

func (h *Handler) StudentsCreate(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, domain.RoleStudent, "/students")
}

func (h *Handler) StaffCreate(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, domain.RoleStaff, "/staff-manage")
}

func (h *Handler) AdminsCreate(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, domain.RoleAdmin, "/admin-manage")
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request, role domain.Role, redirect string) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	req := domain.CreateUserRequest{
		Name:           formString(r.Form, "name"),
		Email:          formString(r.Form, "email"),
		Password:       formString(r.Form, "password"),
		RegisterNumber: formString(r.Form, "register_number"),
		Department:     formString(r.Form, "department"),
		Semester:       formString(r.Form, "semester"),
		DOB:            formString(r.Form, "dob"),
		Phone:          formString(r.Form, "phone"),
	}
	if err := req.Validate(role); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Backend.CreateUser(r.Context(), p.Token, role, req); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// StudentsBulkUpdate promotes or deactivates the selected students in one
// call. An empty selection is a no-op.
func (h *Handler) StudentsBulkUpdate(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form submission"))
		return
	}
	ids := r.Form["selected"]
	if len(ids) == 0 {
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	req := domain.BulkUpdateUsersRequest{
		IDs:      ids,
		Semester: formString(r.Form, "semester"),
	}
	switch formString(r.Form, "active") {
	case "activate":
		v := true
		req.IsActive = &v
	case "deactivate":
		v := false
		req.IsActive = &v
	}
	if err := h.Backend.BulkUpdateUsers(r.Context(), p.Token, req); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

func (h *Handler) StudentsUpload(w http.ResponseWriter, r *http.Request) {
	p := principalFromContext(r.Context())
	payload, err := readUploadedFile(r, "file")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Backend.UploadUsers(r.Context(), p.Token, payload); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}
