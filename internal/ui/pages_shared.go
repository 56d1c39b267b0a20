package ui

import (
	"fmt"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

// appPage is the authenticated shell: sidebar built from the menu catalog for
// the Principal's role, topbar with the signed-in identity and sign-out form,
// and the idle beacon wired on every page. The CSRF token rides in the
// sign-out form and in a meta tag the beacon script reads.
func (h *Handler) appPage(title, active string, principal domain.Principal, token string, body ...Node) Node {
	entries := h.Nav.VisibleTo(principal.Role)
	navNodes := make([]Node, 0, len(entries))
	for _, item := range entries {
		className := "app-nav-link Link--secondary d-flex flex-items-center"
		if item.Key == active {
			className += " active"
		}
		navNodes = append(navNodes, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	who := principal.DisplayName
	if who == "" {
		who = "unknown"
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Meta(Name("csrf-token"), Content(token)),
			TitleEl(Text(title+" | Library Portal")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
			Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
			Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
			Script(
				Type("module"),
				Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
			),
			Script(Raw(themeInitScript)),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Library Portal")),
						P(Class("color-fg-muted text-small mb-0"), Text("Circulation and catalog")),
					),
					Nav(Class("app-nav"), Group(navNodes)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							H1(Class("page-title"), Text(title)),
						),
						Div(
							P(Class("color-fg-muted text-small mb-2"), Text("Signed in as "+who+" ("+string(principal.Role)+")")),
							Form(
								Method("post"),
								Action("/logout"),
								csrfInput(token),
								Button(Type("submit"), Class("btn btn-sm"), Text("Sign out")),
							),
						),
					),
					Div(Class("content"), Group(body)),
				),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
			Script(Raw(themeBehaviorScript)),
			Script(Raw(idleBeaconScript)),
		),
	)
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Library Portal")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/"), Text("Back to start"))),
			),
		),
	)
}

// shortDate trims a backend ISO-8601 timestamp down to its date part.
func shortDate(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return "-"
	}
	if len(ts) > 10 && ts[10] == 'T' {
		return ts[:10]
	}
	return ts
}

func dashIfEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func quickFilterCard(placeholder string, extraControls ...Node) Node {
	controls := []Node{
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), Text("Quick filter")),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	}
	controls = append(controls, extraControls...)
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(Class("d-flex flex-wrap flex-items-center gap-2"), Group(controls)),
	)
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
	)
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

func statCard(label string, value int) Node {
	return Div(
		Class(cardClass("stat")),
		P(Class(mutedClass()), Text(label)),
		Strong(Class("stat-value"), Text(fmt.Sprintf("%d", value))),
	)
}

func (h *Handler) formPage(principal domain.Principal, title, active, action, token string, fields ...Node) Node {
	nodes := []Node{csrfInput(token)}
	nodes = append(nodes, fields...)
	return h.appPage(
		title,
		active,
		principal,
		token,
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(action),
				Group(nodes),
				Div(Class("form-actions"), Button(Type("submit"), Class(primaryButtonClass()), Text("Save"))),
			),
		),
	)
}
