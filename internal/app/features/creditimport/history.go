package creditimport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/credithub/internal/app/store/audit"
	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/credithub/internal/app/system/formutil"
	"github.com/dalemusser/credithub/internal/app/system/limits"
	"github.com/dalemusser/credithub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const historyTitle = "Recent Credit Imports"

// ImportHistory reads recorded import events.
type ImportHistory interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

// historyRow is one finished import as shown on the history page.
type historyRow struct {
	When         time.Time `json:"when"`
	ActorID      string    `json:"actor_id,omitempty"`
	BatchID      string    `json:"batch_id"`
	Lines        string    `json:"lines"`
	Failed       string    `json:"failed"`
	Created      string    `json:"created"`
	CreateFailed string    `json:"create_failed"`
	Success      bool      `json:"success"`
}

type historyData struct {
	formutil.Base

	Rows       []historyRow
	Total      int64
	Mine       bool
	Limit      int
	Offset     int
	PrevOffset int
	NextOffset int
	HasPrev    bool
	HasNext    bool
}

type historyResponse struct {
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Imports []historyRow `json:"imports"`
}

// ServeHistory handles GET /admin/credits/imports.
//
// Query params: limit, offset, and mine=1 to show only the caller's imports.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", limits.DefaultHistoryPage)
	if limit <= 0 {
		limit = limits.DefaultHistoryPage
	}
	if limit > limits.MaxHistoryPage {
		limit = limits.MaxHistoryPage
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := audit.QueryFilter{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventCreditImport,
		Limit:     int64(limit),
		Offset:    int64(offset),
	}
	mine := r.URL.Query().Get("mine") == "1"
	if mine {
		caller, _ := auth.CurrentUser(r)
		oid, err := primitive.ObjectIDFromHex(caller.ID)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "history for non-object user id", err, "Your account has no import history.", r.URL.Path)
			return
		}
		filter.ActorID = &oid
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "credit import history")
	defer cancel()

	total, err := h.History.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count import history failed", err, "Could not load import history.", r.URL.Path)
		return
	}
	events, err := h.History.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query import history failed", err, "Could not load import history.", r.URL.Path)
		return
	}

	rows := make([]historyRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, toHistoryRow(e))
	}

	if !auth.WantsHTML(r) {
		writeJSON(w, http.StatusOK, historyResponse{Total: total, Limit: limit, Offset: offset, Imports: rows})
		return
	}

	data := historyData{
		Rows:   rows,
		Total:  total,
		Mine:   mine,
		Limit:  limit,
		Offset: offset,
	}
	if offset > 0 {
		data.HasPrev = true
		data.PrevOffset = max(offset-limit, 0)
	}
	if int64(offset+len(rows)) < total {
		data.HasNext = true
		data.NextOffset = offset + limit
	}
	formutil.SetBase(&data.Base, r, historyTitle)
	templates.Render(w, r, "credit_import_history", data)
}

func toHistoryRow(e audit.Event) historyRow {
	row := historyRow{
		When:         e.Timestamp,
		BatchID:      e.Details["batch_id"],
		Lines:        e.Details["lines"],
		Failed:       e.Details["failed"],
		Created:      e.Details["created"],
		CreateFailed: e.Details["create_failed"],
		Success:      e.Success,
	}
	if e.ActorID != nil {
		row.ActorID = e.ActorID.Hex()
	}
	return row
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
