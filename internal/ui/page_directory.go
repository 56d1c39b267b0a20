package ui

import (
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func activeBadge(active bool) Node {
	if active {
		return statusLabel("active", "success")
	}
	return statusLabel("inactive", "secondary")
}

func (h *Handler) studentsListPage(principal domain.Principal, students []domain.User, token string) Node {
	rows := make([]Node, 0, len(students))
	for i := range students {
		u := &students[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(u.Name+" "+u.RegisterNumber+" "+u.Department+" "+u.Semester)),
			Td(Input(Type("checkbox"), Name("selected"), Value(u.ID))),
			Td(Text(u.Name)),
			Td(Text(u.RegisterNumber)),
			Td(Text(dashIfEmpty(u.Department))),
			Td(Text(dashIfEmpty(u.Semester))),
			Td(activeBadge(u.IsActive)),
		))
	}

	tableNode := Node(emptyStateCard("No students registered yet."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Text("")),
					Th(Text("Name")),
					Th(Text("Register #")),
					Th(Text("Department")),
					Th(Text("Semester")),
					Th(Text("Status")),
				)),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Students",
		"students",
		principal,
		token,
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
				P(Class("color-fg-muted text-small mb-0"), Text("Manage student accounts.")),
				A(Href("/students/new"), Class(primaryButtonClass()), Text("New student")),
			),
		),
		quickFilterCard("Filter by name, register number, or department"),
		Form(
			Method("post"),
			Action("/students/bulk-update"),
			csrfInput(token),
			tableNode,
			Div(Class(cardClass()),
				H3(Text("Bulk update selected")),
				Div(Class("d-flex flex-wrap flex-items-center gap-2"),
					Label(Text("Semester")),
					Input(Name("semester"), Placeholder("leave empty to keep")),
					Label(Text("Status")),
					Select(Name("active"),
						Option(Value(""), Text("keep")),
						Option(Value("activate"), Text("activate")),
						Option(Value("deactivate"), Text("deactivate")),
					),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Apply")),
				),
			),
		),
		h.uploadCard("/students/upload", "Bulk import students", "CSV columns: name, registerNumber, department, semester, dob, phone.", token),
	)
}

func (h *Handler) directoryListPage(principal domain.Principal, title, active, newHref, token string, users []domain.User) Node {
	rows := make([]Node, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(u.Name+" "+u.Email)),
			Td(Text(u.Name)),
			Td(Text(dashIfEmpty(u.Email))),
			Td(Text(dashIfEmpty(u.Phone))),
			Td(activeBadge(u.IsActive)),
		))
	}

	tableNode := Node(emptyStateCard("No accounts found."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Name")), Th(Text("Email")), Th(Text("Phone")), Th(Text("Status")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		title,
		active,
		principal,
		token,
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
				P(Class("color-fg-muted text-small mb-0"), Text("Manage portal accounts.")),
				A(Href(newHref), Class(primaryButtonClass()), Text("New account")),
			),
		),
		quickFilterCard("Filter by name or email"),
		tableNode,
	)
}

func (h *Handler) userNewPage(principal domain.Principal, title, active, action string, role domain.Role, token string) Node {
	fields := []Node{
		Label(Text("Name")),
		Input(Name("name"), Required()),
	}
	if role == domain.RoleStudent {
		fields = append(fields,
			Label(Text("Register number")),
			Input(Name("register_number"), Required()),
			Label(Text("Department")),
			Input(Name("department")),
			Label(Text("Semester")),
			Input(Name("semester")),
			Label(Text("Date of birth")),
			Input(Type("date"), Name("dob")),
		)
	} else {
		fields = append(fields,
			Label(Text("Email")),
			Input(Type("email"), Name("email"), Required()),
			Label(Text("Password")),
			Input(Type("password"), Name("password"), Required()),
		)
	}
	fields = append(fields,
		Label(Text("Phone")),
		Input(Name("phone")),
	)
	return h.formPage(principal, title, active, action, token, fields...)
}
