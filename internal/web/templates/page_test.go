package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/JonMunkholm/alcheck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFlags = []core.FlagSpec{
	{Key: "chargeAL", Column: "ChargeAL", Label: "Charge AL"},
	{Key: "nftCollabAL", Column: "NFTCollabAL", Label: "NFT Collab AL"},
}

func render(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_Matched(t *testing.T) {
	html := render(t, PageData{
		Status: core.StatusLoaded,
		Flags:  testFlags,
		Result: core.Result{
			Outcome:    core.OutcomeMatched,
			Query:      "A@B.com",
			Identifier: "a@b.com",
			Entry:      &core.Entry{Identifier: "a@b.com", Flags: map[string]bool{"chargeAL": true}},
		},
	})

	assert.Contains(t, html, "Match found.")
	assert.Contains(t, html, `value="A@B.com"`)
	assert.Contains(t, html, `<li class="flag-item is-active" data-flag="chargeAL">`)
	assert.Contains(t, html, `data-state="yes"`)
	assert.Contains(t, html, `data-state="no"`)
	assert.Contains(t, html, PillYesIcon)
	assert.Contains(t, html, PillNoIcon)
}

func TestPage_InitialStateIsNeutral(t *testing.T) {
	html := render(t, PageData{Status: core.StatusIdle, Flags: testFlags})

	assert.NotContains(t, html, PillYesIcon)
	assert.NotContains(t, html, PillNoIcon)
	assert.Contains(t, html, `data-state="unknown"`)
	assert.NotContains(t, html, `class="flag-item is-active"`)
	assert.Contains(t, html, `<li class="flag-item" data-flag="chargeAL">`)
	assert.Contains(t, html, `<span id="result-email">—</span>`)
}

func TestPage_EscapesInput(t *testing.T) {
	html := render(t, PageData{
		Flags:  testFlags,
		Result: core.Result{Outcome: core.OutcomeNotFound, Query: `"><script>x</script>`, Identifier: "<b>"},
	})

	assert.NotContains(t, html, "<script>x</script>")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "No match found.")
}

func TestPill(t *testing.T) {
	tests := []struct {
		state core.FlagState
		want  string
	}{
		{core.FlagYes, `<span class="status-pill is-yes" data-status-label="Charge AL" data-state="yes"><span class="status-icon">⭕</span><span class="status-text">Eligible</span></span>`},
		{core.FlagNo, `<span class="status-pill is-no" data-status-label="Charge AL" data-state="no"><span class="status-icon">❌</span><span class="status-text">Not eligible</span></span>`},
		{core.FlagUnknown, `<span class="status-pill" data-status-label="Charge AL" data-state="unknown"><span class="status-icon">—</span><span class="status-text"></span></span>`},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Pill("Charge AL", tt.state).Render(context.Background(), &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestErrorAlert_EscapesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorAlert("<i>bad</i>", "", "SRC001").Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "&lt;i&gt;bad&lt;/i&gt;")
	assert.NotContains(t, html, "alert-action")
	assert.Contains(t, html, "Code: SRC001")
}

func TestPage_ErrorAlert(t *testing.T) {
	msg := core.MapError(core.ErrEmptyIdentifier)
	html := render(t, PageData{Flags: testFlags, Result: core.Result{Outcome: core.OutcomeInvalid}, Error: &msg})

	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "QRY001")
}
