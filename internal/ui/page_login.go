package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func loginPage(errMsg, notice, token string) Node {
	content := []Node{
		H1(Text("Library Portal")),
		P(Text("Sign in with your library account.")),
		Form(
			Method("post"),
			Action("/login"),
			Class("login-form"),
			csrfInput(token),
			Label(Text("Email or register number")),
			Input(
				Name("identifier"),
				Placeholder("you@example.edu"),
				AutoComplete("username"),
				Required(),
			),
			Label(Text("Password")),
			Input(
				Type("password"),
				Name("password"),
				AutoComplete("current-password"),
				Required(),
			),
			Button(
				Type("submit"),
				Class("btn btn-primary"),
				Text("Sign In"),
			),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error"), Text("Error: "+errMsg))}, content...)
	}
	if notice == "idle" {
		content = append([]Node{P(Class("flash flash-warn"), Text("You were signed out after a period of inactivity."))}, content...)
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text("Sign in | Library Portal")),
			Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
			Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
			Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"), Group(content)),
		),
	)
}
