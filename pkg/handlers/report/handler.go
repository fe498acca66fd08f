package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/report-designer/pkg/adapters"
	"github.com/de-tools/report-designer/pkg/models/api"
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/store"
	"github.com/de-tools/report-designer/pkg/services/catalog"
	"github.com/de-tools/report-designer/pkg/services/selection"
	"github.com/de-tools/report-designer/pkg/services/session"
	"github.com/de-tools/report-designer/pkg/store/duckdb/document"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const SessionHeader = "X-Session-ID"

type Router struct {
	sessions  session.Controller
	documents document.Store
}

func NewReportRouter(sessions session.Controller, documents document.Store) *Router {
	return &Router{
		sessions:  sessions,
		documents: documents,
	}
}

func (h *Router) ListDatasets(w http.ResponseWriter, r *http.Request) {
	names := catalog.Datasets()
	response := make([]api.Dataset, 0, len(names))
	for _, name := range names {
		ds, err := catalog.Lookup(name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		response = append(response, adapters.MapDatasetDomainToApi(ds))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// GetForm returns the form as it looks right after the dataset was picked.
func (h *Router) GetForm(w http.ResponseWriter, r *http.Request) {
	name := domain.DatasetName(chi.URLParam(r, "dataset"))

	state, err := selection.OnDatasetChanged(selection.New(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSelectionDomainToApi(state))
}

// SubmitReport validates the posted form values, builds the document and
// answers with the id the viewer resolves it by.
func (h *Router) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	state, err := selection.Replay(adapters.MapApiRequestToDomain(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, state, err := selection.Submit(state)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(SessionHeader, sessionID)

	doc, err := h.sessions.Submit(ctx, sessionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, mapDocument(doc, state.Mode))
}

// GetReport resolves a built document by id.
func (h *Router) GetReport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mapDocument(doc, domain.ModePreview))
}

// GetReportDefinition serves the stored report definition itself, as the
// viewer's resource locator expects it.
func (h *Router) GetReportDefinition(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("document", doc.ID).
			Msg("failed to write report definition")
	}
}

// GetReportForm reopens the designer for a built document with its
// selections restored.
func (h *Router) GetReportForm(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body api.ReportRequest
	if err := json.Unmarshal(doc.Request, &body); err != nil {
		writeError(w, r, err)
		return
	}
	state, err := selection.Replay(adapters.MapApiRequestToDomain(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSelectionDomainToApi(selection.OpenDesigner(state)))
}

func (h *Router) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Latest(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mapDocument(doc, domain.ModePreview))
}

func (h *Router) CancelBuild(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Cancel(r.Context(), chi.URLParam(r, "session")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func mapDocument(doc *store.Document, mode domain.Mode) api.ReportDocument {
	return api.ReportDocument{
		ID:        doc.ID,
		Session:   doc.Session,
		DataSet:   doc.Dataset,
		Mode:      string(mode),
		CreatedAt: doc.CreatedAt,
		Report:    json.RawMessage(doc.Body),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	response := api.Error{Error: err.Error()}

	var (
		validationErr *domain.ValidationError
		lookupErr     *domain.LookupError
		fetchErr      *domain.DataFetchError
		status        int
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		response.Field = validationErr.Field
	case errors.As(err, &lookupErr):
		status = http.StatusUnprocessableEntity
		response.Field = lookupErr.Field
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	case errors.Is(err, document.ErrNotFound), errors.Is(err, session.ErrNotBuilding):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrCancelled):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, r, status, response)
}
