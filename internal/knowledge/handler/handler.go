package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carebase/internal/knowledge/models"
	"carebase/internal/shared/correlation"
	"carebase/internal/shared/envelope"
	"carebase/internal/shared/faults"
	"carebase/internal/shared/listquery"
	"carebase/internal/shared/repository"
	id "carebase/pkg/domain"
	audit "carebase/pkg/platform/audit"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// GuidelineRepository is the repository surface this handler consumes.
type GuidelineRepository = repository.CrudRepository[models.Guideline, repository.ListParams, models.CreateGuideline, models.UpdateGuideline]

// AuditEmitter records write operations; the audit publisher satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler wires guideline endpoints to the guideline repository.
type Handler struct {
	repo    GuidelineRepository
	auditor AuditEmitter
	logger  *slog.Logger
}

// New constructs a knowledge handler with its dependencies.
func New(repo GuidelineRepository, auditor AuditEmitter, logger *slog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// Register mounts guideline endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/guidelines", h.HandleList)
	r.Post("/guidelines", h.HandleCreate)
	r.Get("/guidelines/{id}", h.HandleGet)
	r.Patch("/guidelines/{id}", h.HandleUpdate)
	r.Delete("/guidelines/{id}", h.HandleDelete)
}

// HandleList handles GET /guidelines.
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
		h.logger.ErrorContext(ctx, "guideline list failed",
			"request_id", requestcontext.RequestID(ctx),
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "guideline page"))
		return
	}

	resp := envelope.NewList(FromModels(page.Items), correlation.New(id.DomainKnowledge))
	resp.Meta.Pagination = &envelope.Pagination{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      len(page.Items),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /guidelines/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	guidelineID, err := id.ParseGuidelineID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	g, err := h.repo.FindByID(ctx, org, uuid.UUID(guidelineID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "guideline"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(g), correlation.New(id.DomainKnowledge)))
}

// HandleCreate handles POST /guidelines.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateGuidelineRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	g, err := h.repo.Create(ctx, org, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "guideline creation failed",
			"request_id", requestID,
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "guideline"))
		return
	}

	cid := correlation.New(id.DomainKnowledge)
	h.emitAudit(ctx, org, audit.ActionCreate, g.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusCreated, envelope.New(FromModel(g), cid))
}

// HandleUpdate handles PATCH /guidelines/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	guidelineID, err := id.ParseGuidelineID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateGuidelineRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	g, err := h.repo.Update(ctx, org, uuid.UUID(guidelineID), req.ToInput())
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "guideline"))
		return
	}

	cid := correlation.New(id.DomainKnowledge)
	h.emitAudit(ctx, org, audit.ActionUpdate, g.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(g), cid))
}

// HandleDelete handles DELETE /guidelines/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	guidelineID, err := id.ParseGuidelineID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.repo.Delete(ctx, org, uuid.UUID(guidelineID)); err != nil {
		httputil.WriteError(w, faults.FromStore(err, "guideline"))
		return
	}

	h.emitAudit(ctx, org, audit.ActionDelete, guidelineID.String(), correlation.New(id.DomainKnowledge))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) emitAudit(ctx context.Context, org id.OrgID, action, resourceID, correlationID string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		OrgID:         org,
		Domain:        id.DomainKnowledge,
		Action:        action,
		ResourceType:  "guideline",
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
