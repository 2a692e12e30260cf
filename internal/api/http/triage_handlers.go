package http

import (
	"net/http"
	"time"

	"github.com/readysetclass/backend/internal/triage"
)

type triageReq struct {
	Announcements []struct {
		Title    string    `json:"title" validate:"required"`
		Message  string    `json:"message"`
		PostedAt time.Time `json:"posted_at"`
	} `json:"announcements" validate:"required,min=1,dive"`
}

type triageItem struct {
	Title string `json:"title"`
	triage.Result
}

// POST /announcements/triage
// Classifies a batch of announcements so the dashboard can surface the urgent
// ones first.
func TriageHandler(analyzer *triage.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req triageReq
		if !decodeValid(w, r, &req) {
			return
		}
		out := make([]triageItem, 0, len(req.Announcements))
		for _, a := range req.Announcements {
			res := analyzer.Analyze(triage.Announcement{
				Title:    a.Title,
				Message:  a.Message,
				PostedAt: a.PostedAt,
			})
			out = append(out, triageItem{Title: a.Title, Result: res})
		}
		writeJSON(w, map[string]interface{}{"results": out})
	}
}
