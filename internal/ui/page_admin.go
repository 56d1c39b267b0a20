package ui

import (
	"fmt"
	"strconv"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) departmentsPage(principal domain.Principal, departments []domain.Department, token string) Node {
	rows := make([]Node, 0, len(departments))
	for i := range departments {
		d := &departments[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(d.Name+" "+d.Code)),
			Td(Text(d.Name)),
			Td(Text(dashIfEmpty(d.Code))),
		))
	}

	tableNode := Node(emptyStateCard("No departments configured."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Name")), Th(Text("Code")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Departments",
		"departments",
		principal,
		token,
		quickFilterCard("Filter departments"),
		tableNode,
		Div(
			Class(cardClass()),
			H3(Text("Add department")),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/departments"),
				csrfInput(token),
				Label(Text("Name")),
				Input(Name("name"), Required()),
				Label(Text("Code")),
				Input(Name("code")),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Add"))),
			),
		),
	)
}

func (h *Handler) auditPage(principal domain.Principal, entries []domain.AuditEntry, token string) Node {
	rows := make([]Node, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(e.Action+" "+e.ActorName+" "+e.Details)),
			Td(Text(shortDate(e.CreatedAt))),
			Td(Text(e.Action)),
			Td(Text(dashIfEmpty(e.ActorName))),
			Td(Text(dashIfEmpty(e.Details))),
		))
	}

	tableNode := Node(emptyStateCard("The audit log is empty."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("When")), Th(Text("Action")), Th(Text("Actor")), Th(Text("Details")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Audit",
		"audit",
		principal,
		token,
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
				P(Class("color-fg-muted text-small mb-0"), Text(fmt.Sprintf("%d audit entries.", len(entries)))),
				Form(
					Method("post"),
					Action("/audit/clear"),
					csrfInput(token),
					Button(Type("submit"), Class("btn btn-danger"), Text("Clear log")),
				),
			),
		),
		quickFilterCard("Filter by action, actor, or details"),
		tableNode,
	)
}

func (h *Handler) feedbackPage(principal domain.Principal, entries []domain.Feedback, token string) Node {
	manage := principal.Role == domain.RoleAdmin

	cards := make([]Node, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		body := []Node{
			data.Show(containsExpr(e.Name + " " + e.Message + " " + e.Reply)),
			Div(Class("d-flex flex-justify-between flex-items-center"),
				Strong(Text(e.Name+" ("+string(e.Role)+")")),
				Span(Class(mutedClass()), Text(shortDate(e.CreatedAt))),
			),
			P(Text(e.Message)),
		}
		if e.Reply != "" {
			body = append(body, P(Class(mutedClass()), Text("Reply: "+e.Reply)))
		}
		if manage {
			body = append(body, Form(
				Method("post"),
				Action("/feedback/delete"),
				csrfInput(token),
				Input(Type("hidden"), Name("id"), Value(e.ID)),
				Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Delete")),
			))
		}
		cards = append(cards, Div(Class(cardClass()), Group(body)))
	}

	listNode := Node(emptyStateCard("No feedback yet."))
	if len(cards) > 0 {
		listNode = Group(cards)
	}

	return h.appPage(
		"Feedback",
		"feedback",
		principal,
		token,
		Div(
			Class(cardClass()),
			H3(Text("Leave feedback")),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/feedback"),
				csrfInput(token),
				Label(Text("Message")),
				Textarea(Name("message"), Required(), Placeholder("Tell us what could be better")),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Send"))),
			),
		),
		quickFilterCard("Filter feedback"),
		listNode,
	)
}

func (h *Handler) rulesPage(principal domain.Principal, rules *domain.LibraryRules, token string) Node {
	body := []Node{
		Div(Class("stat-grid"),
			Div(Class(cardClass("stat")),
				P(Class(mutedClass()), Text("Fine per day")),
				Strong(Class("stat-value"), Text(fmt.Sprintf("%.2f", rules.FinePerDay))),
			),
			statCard("Max books per student", rules.MaxBooksPerStudent),
			statCard("Loan period (days)", rules.IssueDaysLimit),
		),
		Div(Class(cardClass()),
			H3(Text("Library rules")),
			P(Text(dashIfEmpty(rules.LibraryRules))),
		),
	}

	if principal.Role == domain.RoleAdmin {
		body = append(body, Div(
			Class(cardClass()),
			H3(Text("Edit rules")),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/rules"),
				csrfInput(token),
				Label(Text("Fine per day")),
				Input(Type("number"), Step("0.01"), Name("fine_per_day"), Value(fmt.Sprintf("%.2f", rules.FinePerDay))),
				Label(Text("Max books per student")),
				Input(Type("number"), Name("max_books"), Value(strconv.Itoa(rules.MaxBooksPerStudent))),
				Label(Text("Loan period (days)")),
				Input(Type("number"), Name("issue_days"), Value(strconv.Itoa(rules.IssueDaysLimit))),
				Label(Text("Rules text")),
				Textarea(Name("rules_text"), Text(rules.LibraryRules)),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Save rules"))),
			),
		))
	}

	return h.appPage("Rules", "rules", principal, token, body...)
}

func (h *Handler) settingsPage(principal domain.Principal, token string) Node {
	return h.appPage(
		"Settings",
		"settings",
		principal,
		token,
		Div(Class(cardClass()),
			H3(Text("Appearance")),
			P(Class(mutedClass()), Text("Theme preference is stored in this browser only.")),
			Div(Class("d-flex flex-items-center gap-2"),
				Label(Text("Theme")),
				Select(ID("theme-mode"),
					Option(Value("auto"), Text("System")),
					Option(Value("light"), Text("Light")),
					Option(Value("dark"), Text("Dark")),
				),
			),
		),
		Div(Class(cardClass()),
			H3(Text("Account")),
			Div(Class("catalog-meta"),
				Div(Class("catalog-meta-row"), Strong(Text("Name: ")), Span(Text(principal.DisplayName))),
				Div(Class("catalog-meta-row"), Strong(Text("Role: ")), Span(Text(string(principal.Role)))),
			),
		),
	)
}
