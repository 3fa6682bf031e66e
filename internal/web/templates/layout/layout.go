// Package layout provides the page shell shared by every HTML page.
package layout

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/folio/internal/model"
)

//go:embed shell.html
var files embed.FS

var shell = template.Must(template.ParseFS(files, "shell.html"))

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, info, danger
	Message string
}

// PageData holds the values every page needs
type PageData struct {
	Title   string
	Account *model.Account // nil when anonymous
	Flash   *FlashMessage
}

// Page wraps body in the site shell: head, navigation and flash banner
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := shell.ExecuteTemplate(w, "start", data); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		return shell.ExecuteTemplate(w, "end", data)
	})
}
