package ui

import (
	"fmt"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

func (h *Handler) booksListPage(principal domain.Principal, books []domain.Book, token string) Node {
	rows := make([]Node, 0, len(books))
	for i := range books {
		b := &books[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(b.Title+" "+b.Author+" "+b.ISBN+" "+b.Category+" "+b.Department)),
			Td(Input(Type("checkbox"), Name("selected"), Value(b.ID))),
			Td(Text(b.Title)),
			Td(Text(dashIfEmpty(b.Author))),
			Td(Text(b.ISBN)),
			Td(Text(dashIfEmpty(b.Category))),
			Td(Text(fmt.Sprintf("%d / %d", b.AvailableCopies, b.TotalCopies))),
			Td(Form(
				Method("post"),
				Action("/books/"+b.ID+"/copy"),
				csrfInput(token),
				Button(Type("submit"), Class("btn btn-sm"), Text("Add copy")),
			)),
		))
	}

	tableNode := Node(emptyStateCard("No books in the catalog yet."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Text("")),
					Th(Text("Title")),
					Th(Text("Author")),
					Th(Text("ISBN")),
					Th(Text("Category")),
					Th(Text("Available")),
					Th(Text("")),
				)),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Inventory",
		"books",
		principal,
		token,
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
				P(Class("color-fg-muted text-small mb-0"), Text("Manage the book catalog.")),
				Div(Class("button-row"),
					A(Href("/books/new"), Class(primaryButtonClass()), Text("New book")),
				),
			),
		),
		quickFilterCard("Filter by title, author, ISBN, or category"),
		Form(
			Method("post"),
			Action("/books/bulk-delete"),
			csrfInput(token),
			tableNode,
			Div(Class("form-actions"),
				Button(Type("submit"), Class("btn btn-danger"), Text("Delete selected")),
			),
		),
		h.uploadCard("/books/upload", "Bulk import books", "CSV columns: title, author, isbn, category, department, publisher, copies.", token),
	)
}

func (h *Handler) libraryBrowsePage(principal domain.Principal, books []domain.Book, token string) Node {
	rows := make([]Node, 0, len(books))
	for i := range books {
		b := &books[i]
		availability := statusLabel("available", "success")
		if b.AvailableCopies == 0 {
			availability = statusLabel("on loan", "attention")
		}
		rows = append(rows, Tr(
			data.Show(containsExpr(b.Title+" "+b.Author+" "+b.Category+" "+b.Department)),
			Td(Text(b.Title)),
			Td(Text(dashIfEmpty(b.Author))),
			Td(Text(dashIfEmpty(b.Category))),
			Td(Text(dashIfEmpty(b.Department))),
			Td(availability),
		))
	}

	tableNode := Node(emptyStateCard("The catalog is empty."))
	if len(rows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Title")), Th(Text("Author")), Th(Text("Category")), Th(Text("Department")), Th(Text("Availability")))),
				TBody(Group(rows)),
			),
		)
	}

	return h.appPage(
		"Catalog",
		"library",
		principal,
		token,
		quickFilterCard("Search the catalog"),
		tableNode,
	)
}

func (h *Handler) booksNewPage(principal domain.Principal, token string) Node {
	return h.formPage(principal, "New Book", "books", "/books", token,
		Label(Text("Title")),
		Input(Name("title"), Required()),
		Label(Text("Author")),
		Input(Name("author")),
		Label(Text("ISBN")),
		Input(Name("isbn"), Required()),
		Label(Text("Category")),
		Input(Name("category")),
		Label(Text("Department")),
		Input(Name("department")),
		Label(Text("Publisher")),
		Input(Name("publisher")),
		Label(Text("Copies")),
		Input(Type("number"), Name("copies"), Value("1"), Min("1")),
	)
}

func (h *Handler) uploadCard(action, title, hint, token string) Node {
	return Div(
		Class(cardClass()),
		H3(Text(title)),
		P(Class(mutedClass()), Text(hint)),
		Form(
			Method("post"),
			Action(action),
			EncType("multipart/form-data"),
			Class("stack-form"),
			csrfInput(token),
			Input(Type("file"), Name("file"), Accept(".csv"), Required()),
			Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Upload"))),
		),
	)
}
