package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/alcheck/internal/core"
	"github.com/JonMunkholm/alcheck/internal/logging"
	"github.com/JonMunkholm/alcheck/internal/web/templates"
)

// lookupResponse is the JSON body of GET /api/lookup.
type lookupResponse struct {
	LookupID string          `json:"lookupId"`
	Outcome  core.Outcome    `json:"outcome"`
	Email    string          `json:"email"`
	Flags    map[string]bool `json:"flags,omitempty"`
	Message  string          `json:"message"`
	Action   string          `json:"action,omitempty"`
	Code     string          `json:"code,omitempty"`
}

// statusResponse is the JSON body of GET /api/status.
type statusResponse struct {
	State    core.LoadState         `json:"state"`
	Status   string                 `json:"status"`
	Schema   string                 `json:"schema"`
	Entries  int                    `json:"entries"`
	LoadID   string                 `json:"loadId,omitempty"`
	LoadedAt *time.Time             `json:"loadedAt,omitempty"`
	Fetches  int64                  `json:"fetches"`
	Error    *core.UserMessage      `json:"error,omitempty"`
	Lookups  map[core.Outcome]int64 `json:"lookups,omitempty"`
}

// handleIndex renders the empty lookup page. It never triggers a load.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, core.Result{}, nil)
}

// handleLookupPage renders the page with the result for ?email=.
func (s *Server) handleLookupPage(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Find(r.Context(), r.URL.Query().Get("email"))

	var msg *core.UserMessage
	if err != nil {
		m := core.MapError(err)
		msg = &m
	}
	s.renderPage(w, r, statusForOutcome(res.Outcome), res, msg)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, res core.Result, msg *core.UserMessage) {
	data := templates.PageData{
		Status: s.statusLine(),
		Flags:  s.service.Schema().Flags,
		Result: res,
		Error:  msg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Page(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleAPILookup answers ?email= as JSON.
func (s *Server) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Find(r.Context(), r.URL.Query().Get("email"))

	resp := lookupResponse{
		LookupID: res.LookupID.String(),
		Outcome:  res.Outcome,
		Email:    res.Identifier,
		Message:  res.Message(),
	}
	if res.Found() {
		resp.Flags = make(map[string]bool, len(res.Entry.Flags))
		for k, v := range res.Entry.Flags {
			resp.Flags[k] = v
		}
	}
	if err != nil {
		msg := core.MapError(err)
		resp.Message, resp.Action, resp.Code = msg.Message, msg.Action, msg.Code
	}

	writeJSON(w, statusForOutcome(res.Outcome), resp)
}

// handleStatus reports the loader state without triggering a load.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	loader := s.service.Loader()

	resp := statusResponse{
		State:   loader.State(),
		Status:  s.statusLine(),
		Schema:  loader.Schema().Name,
		Fetches: loader.FetchCount(),
	}
	if ds := loader.Dataset(); ds != nil {
		resp.Entries = ds.Len()
		resp.LoadID = ds.LoadID.String()
		loadedAt := ds.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	if err := loader.LastError(); err != nil {
		msg := core.MapError(err)
		resp.Error = &msg
	}
	if s.board != nil {
		resp.Lookups = s.board.Snapshot().Lookups
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReload refetches the sheet. The previous dataset keeps serving if
// the reload fails.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	loader := s.service.Loader()
	if err := loader.Reload(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	ds := loader.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":   loader.State(),
		"entries": ds.Len(),
		"loadId":  ds.LoadID.String(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// statusLine is the human-readable load status.
func (s *Server) statusLine() string {
	if s.board != nil {
		return s.board.Snapshot().Status
	}
	return core.LoadEvent{State: s.service.Loader().State()}.Status()
}

// statusForOutcome maps a lookup outcome to its HTTP status.
func statusForOutcome(o core.Outcome) int {
	switch o {
	case core.OutcomeInvalid:
		return http.StatusBadRequest
	case core.OutcomeLoadError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}
