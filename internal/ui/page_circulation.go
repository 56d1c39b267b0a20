package ui

import (
	"fmt"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func transactionRow(tx *domain.Transaction, withStudent bool) Node {
	status := "on loan"
	tone := "accent"
	if tx.Returned() {
		status = "returned"
		tone = "success"
	}
	cells := []Node{
		data.Show(containsExpr(tx.Book.Title + " " + tx.Book.ISBN + " " + tx.Student.Name + " " + tx.Student.RegisterNumber + " " + tx.CopyID)),
		Td(Text(tx.Book.Title)),
	}
	if withStudent {
		cells = append(cells, Td(Text(tx.Student.Name)), Td(Text(tx.Student.RegisterNumber)))
	}
	cells = append(cells,
		Td(Text(tx.CopyID)),
		Td(Text(shortDate(tx.IssueDate))),
		Td(Text(shortDate(tx.DueDate))),
		Td(Text(shortDate(tx.ReturnDate))),
		Td(statusLabel(status, tone)),
	)
	return Tr(cells...)
}

func transactionHeader(withStudent bool) Node {
	cells := []Node{Th(Text("Book"))}
	if withStudent {
		cells = append(cells, Th(Text("Student")), Th(Text("Register #")))
	}
	cells = append(cells,
		Th(Text("Copy")),
		Th(Text("Issued")),
		Th(Text("Due")),
		Th(Text("Returned")),
		Th(Text("Status")),
	)
	return Tr(cells...)
}

func transactionTable(history []domain.Transaction, withStudent bool, emptyMessage string) Node {
	rows := make([]Node, 0, len(history))
	for i := range history {
		rows = append(rows, transactionRow(&history[i], withStudent))
	}
	if len(rows) == 0 {
		return emptyStateCard(emptyMessage)
	}
	return Div(Class(cardClass("table-wrap")),
		Table(Class("data-table"),
			THead(transactionHeader(withStudent)),
			TBody(Group(rows)),
		),
	)
}

func (h *Handler) circulationPage(principal domain.Principal, recent []domain.Transaction, token string) Node {
	return h.appPage(
		"Circulation",
		"circulation",
		principal,
		token,
		Div(Class("split-grid"),
			Div(
				Class(cardClass()),
				H3(Text("Issue a book")),
				Form(
					Class("stack-form"),
					Method("post"),
					Action("/circulation/issue"),
					csrfInput(token),
					Label(Text("Student register number")),
					Input(Name("register_number"), Required()),
					Label(Text("Book ISBN")),
					Input(Name("isbn"), Required()),
					Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Issue"))),
				),
			),
			Div(
				Class(cardClass()),
				H3(Text("Return a book")),
				Form(
					Class("stack-form"),
					Method("post"),
					Action("/circulation/return"),
					csrfInput(token),
					Label(Text("Copy ID")),
					Input(Name("copy_id"), Required()),
					Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Return"))),
				),
			),
		),
		quickFilterCard("Filter recent activity"),
		transactionTable(recent, true, "No circulation activity yet."),
	)
}

func (h *Handler) finesPage(principal domain.Principal, fines []domain.Transaction, token string) Node {
	rows := make([]Node, 0, len(fines))
	var total float64
	for i := range fines {
		tx := &fines[i]
		total += tx.Fine
		paid := statusLabel("unpaid", "danger")
		if tx.IsFinePaid {
			paid = statusLabel("paid", "success")
		}
		rows = append(rows, Tr(
			data.Show(containsExpr(tx.Book.Title+" "+tx.Student.Name+" "+tx.Student.RegisterNumber)),
			Td(Text(tx.Student.Name)),
			Td(Text(tx.Student.RegisterNumber)),
			Td(Text(tx.Book.Title)),
			Td(Text(shortDate(tx.DueDate))),
			Td(Text(fmt.Sprintf("%.2f", tx.Fine))),
			Td(paid),
		))
	}

	tableNode := Node(emptyStateCard("No outstanding fines."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Student")), Th(Text("Register #")), Th(Text("Book")), Th(Text("Due")), Th(Text("Fine")), Th(Text("Status")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Fines",
		"fines",
		principal,
		token,
		Div(Class(cardClass()),
			P(Class(mutedClass()), Text(fmt.Sprintf("Total fines on record: %.2f", total))),
		),
		quickFilterCard("Filter by student or book"),
		tableNode,
	)
}

func (h *Handler) historyPage(principal domain.Principal, history []domain.Transaction, token string) Node {
	return h.appPage(
		"Reports",
		"history",
		principal,
		token,
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
				P(Class("color-fg-muted text-small mb-0"), Text(fmt.Sprintf("%d circulation records.", len(history)))),
				A(Href("/history/export"), Class(primaryButtonClass()), Text("Export CSV")),
			),
		),
		quickFilterCard("Filter by book, student, or copy"),
		transactionTable(history, true, "No circulation history."),
		Div(
			Class(cardClass()),
			H3(Text("Clear old records")),
			P(Class(mutedClass()), Text("Removes records issued inside the date range. Leave both dates empty to clear everything.")),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/history/clear"),
				csrfInput(token),
				Label(Text("From")),
				Input(Type("date"), Name("start")),
				Label(Text("To")),
				Input(Type("date"), Name("end")),
				Div(Class("form-actions"), Button(Type("submit"), Class("btn btn-danger"), Text("Clear records"))),
			),
		),
	)
}

func (h *Handler) myBooksPage(principal domain.Principal, history []domain.Transaction, token string) Node {
	return h.appPage(
		"My Books",
		"my-books",
		principal,
		token,
		quickFilterCard("Filter your borrowing history"),
		transactionTable(history, false, "You have not borrowed any books yet."),
	)
}
