// Package template holds the embedded HTML views and the data handed to them.
//
// Public pages: index.html, post.html, search.html, about.html, contact.html,
// not_found.html, error.html. Admin pages: login.html, register.html,
// dashboard.html, add-post.html, edit-post.html. Shared chrome lives in
// layout.html as the header/footer and admin_header/admin_footer blocks.
package template

import (
	"embed"
	htmltemplate "html/template"
	"time"

	"github.com/simpleblog/backend/internal/model"
)

//go:embed views/*.html views/admin/*.html
var views embed.FS

const DefaultDescription = "Simple Blog created with Go, Gin & PostgreSQL."

// Locals - title and description of a page
type Locals struct {
	Title       string
	Description string
}

// Page - everything a view may read
type Page struct {
	Locals       Locals
	CurrentRoute string

	Posts []model.Post
	Post  *model.Post

	// index pagination
	Current  int
	NextPage int

	SearchTerm string
	Form       model.PostRequest
	Error      string
}

// NewPage fills Locals with the default description.
func NewPage(title, currentRoute string) Page {
	return Page{
		Locals: Locals{
			Title:       title,
			Description: DefaultDescription,
		},
		CurrentRoute: currentRoute,
	}
}

func Funcs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"isActiveRoute": IsActiveRoute,
		"formatDate":    FormatDate,
	}
}

// IsActiveRoute returns the nav class for the link matching the current route.
func IsActiveRoute(route, currentRoute string) string {
	if route == currentRoute {
		return "active"
	}
	return ""
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Load parses every embedded view into one set, addressable by file name.
func Load() (*htmltemplate.Template, error) {
	return htmltemplate.New("").Funcs(Funcs()).ParseFS(views, "views/*.html", "views/admin/*.html")
}
