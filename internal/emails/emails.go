// Package emails holds the StockFolio message templates and the data each
// template expects. Templates are embedded, so the binary needs no files at
// runtime.
package emails

import (
	"embed"
	"io/fs"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

//go:embed templates
var files embed.FS

// Layout is the HTML layout every templated message is wrapped in.
const Layout = "base.html"

// DefaultUsername is used when a request carries no username.
const DefaultUsername = "User"

// Kind identifies a message kind and the template that renders it.
type Kind string

const (
	KindGeneric       Kind = "generic"
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
	KindDividendAlert Kind = "dividend_alert"
)

// Template returns the markdown template file for k.
// Generic messages are not rendered and have none.
func (k Kind) Template() string {
	if k == KindGeneric {
		return ""
	}
	return string(k) + ".md"
}

// Verification is the data for the account verification message.
type Verification struct {
	Username string
	URL      string
}

// PasswordReset is the data for the password reset message.
type PasswordReset struct {
	Username string
	URL      string
}

// DividendAlert is the data for the dividend alert message.
// Values are preformatted strings and are rendered as given.
type DividendAlert struct {
	Symbol      string
	Amount      string
	Date        string
	DaysAdvance string
}

// FS returns the template tree with layouts under "layouts/".
func FS() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// NewRenderer returns a renderer over the embedded templates.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRenderer(FS())
}
