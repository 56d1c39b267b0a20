package ui

import (
	"fmt"
	"sort"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) dashboardPage(title string, principal domain.Principal, stats *domain.DashboardStats, token string) Node {
	deptRows := make([]Node, 0, len(stats.DeptActivity))
	depts := make([]string, 0, len(stats.DeptActivity))
	for dept := range stats.DeptActivity {
		depts = append(depts, dept)
	}
	sort.Strings(depts)
	for _, dept := range depts {
		deptRows = append(deptRows, Tr(Td(Text(dept)), Td(Text(fmt.Sprintf("%d", stats.DeptActivity[dept])))))
	}

	deptNode := Node(emptyStateCard("No circulation activity recorded yet."))
	if len(deptRows) > 0 {
		deptNode = Div(Class(cardClass("table-wrap")),
			H3(Text("Activity by department")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Department")), Th(Text("Issues")))),
				TBody(Group(deptRows)),
			),
		)
	}

	return h.appPage(
		title,
		"dashboard",
		principal,
		token,
		Div(Class("stat-grid"),
			statCard("Books in catalog", stats.TotalBooks),
			statCard("Registered students", stats.TotalStudents),
			statCard("Books on loan", stats.IssuedCount),
			statCard("Overdue loans", stats.OverdueCount),
		),
		deptNode,
	)
}

func (h *Handler) studentDashboardPage(principal domain.Principal, active, overdue int, fineDue float64, recent []domain.Transaction, token string) Node {
	rows := make([]Node, 0, len(recent))
	for i := range recent {
		tx := &recent[i]
		status := "on loan"
		tone := "accent"
		if tx.Returned() {
			status = "returned"
			tone = "success"
		}
		rows = append(rows, Tr(
			Td(Text(tx.Book.Title)),
			Td(Text(shortDate(tx.IssueDate))),
			Td(Text(shortDate(tx.DueDate))),
			Td(statusLabel(status, tone)),
		))
	}

	recentNode := Node(emptyStateCard("No borrowing activity yet. Browse the catalog to get started."))
	if len(rows) > 0 {
		recentNode = Div(Class(cardClass("table-wrap")),
			H3(Text("Recent activity")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Book")), Th(Text("Issued")), Th(Text("Due")), Th(Text("Status")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"My Library",
		"my-books",
		principal,
		token,
		Div(Class("stat-grid"),
			statCard("Books with you", active),
			statCard("Overdue", overdue),
			Div(Class(cardClass("stat")),
				P(Class(mutedClass()), Text("Fines due")),
				Strong(Class("stat-value"), Text(fmt.Sprintf("%.2f", fineDue))),
			),
		),
		recentNode,
		P(A(Href("/library"), Class(primaryButtonClass()), Text("Browse catalog"))),
	)
}
