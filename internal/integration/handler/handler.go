package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carebase/internal/integration/models"
	"carebase/internal/shared/correlation"
	"carebase/internal/shared/envelope"
	"carebase/internal/shared/faults"
	"carebase/internal/shared/listquery"
	"carebase/internal/shared/repository"
	"carebase/internal/shared/timefmt"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
	audit "carebase/pkg/platform/audit"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// SecretHeader carries the endpoint shared secret on document ingest.
const SecretHeader = "X-Endpoint-Secret"

// EndpointRepository is the repository surface this handler consumes.
type EndpointRepository = repository.CrudRepository[models.Endpoint, repository.ListParams, models.CreateEndpoint, models.UpdateEndpoint]

// AuditEmitter records write operations; the audit publisher satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler wires endpoint and document-ingest endpoints to the endpoint
// repository.
type Handler struct {
	repo    EndpointRepository
	auditor AuditEmitter
	logger  *slog.Logger
}

// New constructs an integration handler with its dependencies.
func New(repo EndpointRepository, auditor AuditEmitter, logger *slog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// Register mounts integration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/endpoints", h.HandleList)
	r.Post("/endpoints", h.HandleCreate)
	r.Get("/endpoints/{id}", h.HandleGet)
	r.Patch("/endpoints/{id}", h.HandleUpdate)
	r.Delete("/endpoints/{id}", h.HandleDelete)
	r.Post("/endpoints/{id}/documents", h.HandleIngestDocuments)
}

// HandleList handles GET /endpoints.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	params, err := listquery.Parse(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, err := h.repo.List(ctx, org, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "endpoint list failed",
			"request_id", requestcontext.RequestID(ctx),
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "endpoint page"))
		return
	}

	resp := envelope.NewList(FromModels(page.Items), correlation.New(id.DomainIntegration))
	resp.Meta.Pagination = &envelope.Pagination{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      len(page.Items),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /endpoints/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	endpointID, err := id.ParseEndpointID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.repo.FindByID(ctx, org, uuid.UUID(endpointID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "endpoint"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(e), correlation.New(id.DomainIntegration)))
}

// HandleCreate handles POST /endpoints.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateEndpointRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	e, err := h.repo.Create(ctx, org, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "endpoint creation failed",
			"request_id", requestID,
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "endpoint"))
		return
	}

	cid := correlation.New(id.DomainIntegration)
	h.emitAudit(ctx, org, audit.ActionCreate, e.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusCreated, envelope.New(FromModel(e), cid))
}

// HandleUpdate handles PATCH /endpoints/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	endpointID, err := id.ParseEndpointID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateEndpointRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	e, err := h.repo.Update(ctx, org, uuid.UUID(endpointID), req.ToInput())
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "endpoint"))
		return
	}

	cid := correlation.New(id.DomainIntegration)
	h.emitAudit(ctx, org, audit.ActionUpdate, e.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(e), cid))
}

// HandleDelete handles DELETE /endpoints/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	endpointID, err := id.ParseEndpointID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.repo.Delete(ctx, org, uuid.UUID(endpointID)); err != nil {
		httputil.WriteError(w, faults.FromStore(err, "endpoint"))
		return
	}

	h.emitAudit(ctx, org, audit.ActionDelete, endpointID.String(), correlation.New(id.DomainIntegration))
	w.WriteHeader(http.StatusNoContent)
}

// HandleIngestDocuments handles POST /endpoints/{id}/documents. The caller
// authenticates with the endpoint shared secret; date fields configured on
// the endpoint are normalized to the wire layout and the batch is echoed
// back for downstream delivery.
func (h *Handler) HandleIngestDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	endpointID, err := id.ParseEndpointID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.repo.FindByID(ctx, org, uuid.UUID(endpointID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "endpoint"))
		return
	}
	if !e.Active {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "endpoint is inactive"))
		return
	}
	if !e.VerifySecret(r.Header.Get(SecretHeader)) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "endpoint secret mismatch"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[IngestDocumentsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	normalized := timefmt.NormalizeAll(req.Documents, e.DateFields)

	cid := correlation.New(id.DomainIntegration)
	h.emitAudit(ctx, org, "ingest", e.ID.String(), cid)
	h.logger.InfoContext(ctx, "documents ingested",
		"request_id", requestID,
		"org_id", org.String(),
		"endpoint_id", e.ID.String(),
		"count", len(normalized),
	)

	resp := envelope.NewList(normalized, cid)
	resp.Meta.Pagination = &envelope.Pagination{Limit: len(normalized)}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) emitAudit(ctx context.Context, org id.OrgID, action, resourceID, correlationID string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		OrgID:         org,
		Domain:        id.DomainIntegration,
		Action:        action,
		ResourceType:  "endpoint",
		ResourceID:    resourceID,
		CorrelationID: correlationID,
		RequestID:     requestcontext.RequestID(ctx),
		Actor:         requestcontext.AuthSubject(ctx),
		ClientIP:      requestcontext.ClientIP(ctx),
		Browser:       requestcontext.Browser(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "audit emit failed",
			"org_id", org.String(),
			"action", action,
			"error", err,
		)
	}
}
