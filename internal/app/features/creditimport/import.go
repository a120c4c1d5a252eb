package creditimport

import (
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/credithub/internal/app/features/errors"
	"github.com/dalemusser/credithub/internal/app/system/auditlog"
	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/credithub/internal/app/system/formutil"
	"github.com/dalemusser/credithub/internal/app/system/limits"
	"github.com/dalemusser/credithub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const pageTitle = "Import Credits"

// ServeImport handles GET /admin/credits/import.
func (h *Handler) ServeImport(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, importData{FieldName: FieldCSVString}, nil)
}

// HandleImport handles POST /admin/credits/import.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CurrentUser(r)
	// Authorize before reading the body so rejected callers cost nothing.
	if err := Authorize(caller); err != nil {
		h.rejectImport(w, r, caller, err)
		return
	}

	maxBytes := h.Importer.MaxBytes
	if maxBytes <= 0 {
		maxBytes = limits.MaxImportBytes
	}
	// Leave headroom for urlencoding of the field itself.
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes)*3+1024)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse import form failed", err, "The submission could not be read.", r.URL.Path)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "credit import")
	defer cancel()

	res, err := h.Importer.Import(ctx, caller, r.PostForm)
	if err != nil {
		var unauth *UnauthorizedError
		var malformed *MalformedSubmissionError
		switch {
		case errors.As(err, &unauth):
			h.rejectImport(w, r, caller, err)
		case errors.As(err, &malformed):
			data := importData{FieldName: FieldCSVString, CSVString: malformed.Form.CSVString}
			data.SetError(malformed.Reason)
			h.render(w, r, http.StatusBadRequest, data, &importResponse{Form: malformed.Form, Error: malformed.Reason})
		default:
			h.ErrLog.LogServerError(w, r, "credit import failed", err,
				"Could not load the user directory. No credits were created.", r.URL.Path)
		}
		return
	}

	h.Audit.CreditImport(r.Context(), r, caller.ID, res.BatchID, auditlog.ImportCounts{
		Lines:        res.Lines,
		Failed:       len(res.Failed),
		Created:      res.Created(),
		CreateFailed: res.CreateFailed(),
	})

	data := importData{
		FieldName:    FieldCSVString,
		CSVString:    res.Form.CSVString,
		Submitted:    true,
		Lines:        res.Lines,
		FailedCount:  len(res.Failed),
		Created:      res.Created(),
		CreateFailed: res.CreateFailed(),
	}
	h.render(w, r, http.StatusOK, data, &importResponse{
		Form:         res.Form,
		BatchID:      res.BatchID,
		Lines:        res.Lines,
		FailedCount:  len(res.Failed),
		Created:      res.Created(),
		CreateFailed: res.CreateFailed(),
	})
}

// render writes the HTML page for browsers and resp as JSON for API callers.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data importData, resp *importResponse) {
	if !auth.WantsHTML(r) {
		if resp == nil {
			resp = &importResponse{}
		}
		writeJSON(w, status, resp)
		return
	}

	formutil.SetBase(&data.Base, r, pageTitle)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "credit_import", data)
}

// rejectImport records the refused attempt and writes the 401.
func (h *Handler) rejectImport(w http.ResponseWriter, r *http.Request, caller *auth.SessionUser, err error) {
	actorID := ""
	if caller != nil {
		actorID = caller.ID
	}
	h.Audit.CreditImportRejected(r.Context(), r, actorID, err.Error())
	h.writeUnauthorized(w, r, err)
}

// requireImporter guards read-only pages with the same check and response
// shape as a rejected import.
func (h *Handler) requireImporter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ := auth.CurrentUser(r)
		if err := Authorize(caller); err != nil {
			h.writeUnauthorized(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	h.Log.Info("credit import rejected", zap.String("reason", err.Error()))
	if auth.WantsHTML(r) {
		w.WriteHeader(http.StatusUnauthorized)
		uierrors.RenderUnauthorized(w, r, err.Error())
		return
	}
	writeJSON(w, http.StatusUnauthorized, importResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
