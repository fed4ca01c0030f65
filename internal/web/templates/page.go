package templates

import "github.com/JonMunkholm/alcheck/internal/core"

// PageData is everything the lookup page shows.
type PageData struct {
	Title  string
	Status string // load status line
	Flags  []core.FlagSpec
	Result core.Result
	Error  *core.UserMessage
}

func (d PageData) title() string {
	if d.Title == "" {
		return "Allowlist check"
	}
	return d.Title
}

func displayEmail(r core.Result) string {
	if r.Identifier == "" {
		return "—"
	}
	return r.Identifier
}
