// Package templates renders the lookup page.
//
// Markup lives in the .templ files; run `templ generate` after editing them.
package templates

import "github.com/JonMunkholm/alcheck/internal/core"

// Pill text per flag state.
const (
	PillYesIcon     = "⭕"
	PillYesText     = "Eligible"
	PillNoIcon      = "❌"
	PillNoText      = "Not eligible"
	PillUnknownIcon = "—"
)

func pillClass(state core.FlagState) string {
	switch state {
	case core.FlagYes:
		return "status-pill is-yes"
	case core.FlagNo:
		return "status-pill is-no"
	default:
		return "status-pill"
	}
}

func pillIcon(state core.FlagState) string {
	switch state {
	case core.FlagYes:
		return PillYesIcon
	case core.FlagNo:
		return PillNoIcon
	default:
		return PillUnknownIcon
	}
}

func pillText(state core.FlagState) string {
	switch state {
	case core.FlagYes:
		return PillYesText
	case core.FlagNo:
		return PillNoText
	default:
		return ""
	}
}

func flagClass(state core.FlagState) string {
	if state == core.FlagYes {
		return "flag-item is-active"
	}
	return "flag-item"
}
