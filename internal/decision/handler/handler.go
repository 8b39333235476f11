package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carebase/internal/decision/metrics"
	"carebase/internal/decision/models"
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

// DecisionRepository is the repository surface this handler consumes:
// read, ingest and acknowledge. Decision results are never updated or
// deleted through the API.
type DecisionRepository interface {
	repository.ReadRepository[models.Decision, repository.ListParams]
	repository.ActionRepository
	Create(ctx context.Context, org id.OrgID, input models.CreateDecision) (*models.Decision, error)
	Acknowledge(ctx context.Context, org id.OrgID, decisionID uuid.UUID, actor string) (*models.Decision, error)
}

// AuditEmitter records write operations; the audit publisher satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler wires decision endpoints to the decision repository.
type Handler struct {
	repo    DecisionRepository
	auditor AuditEmitter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a decision handler with its dependencies.
func New(repo DecisionRepository, auditor AuditEmitter, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/decisions", h.HandleList)
	r.Post("/decisions", h.HandleCreate)
	r.Get("/decisions/{id}", h.HandleGet)
	r.Post("/decisions/{id}/acknowledge", h.HandleAcknowledge)
}

// HandleList handles GET /decisions.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	start := time.Now()

	params, err := listquery.Parse(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, err := h.repo.List(ctx, org, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision list failed",
			"request_id", requestcontext.RequestID(ctx),
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "decision page"))
		return
	}
	h.metrics.ObserveList(start)

	resp := envelope.NewList(FromModels(page.Items), correlation.New(id.DomainDecision))
	resp.Meta.Pagination = &envelope.Pagination{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      len(page.Items),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /decisions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	decisionID, err := id.ParseDecisionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	d, err := h.repo.FindByID(ctx, org, uuid.UUID(decisionID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "decision"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(d), correlation.New(id.DomainDecision)))
}

// HandleCreate handles POST /decisions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateDecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.repo.Create(ctx, org, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "decision ingest failed",
			"request_id", requestID,
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "decision"))
		return
	}
	h.metrics.IncrementIngested(string(d.Severity))

	cid := correlation.New(id.DomainDecision)
	h.emitAudit(ctx, org, audit.ActionCreate, d.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusCreated, envelope.New(FromModel(d), cid))
}

// HandleAcknowledge handles POST /decisions/{id}/acknowledge.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	decisionID, err := id.ParseDecisionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	actor := requestcontext.AuthSubject(ctx)
	d, err := h.repo.Acknowledge(ctx, org, uuid.UUID(decisionID), actor)
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "decision"))
		return
	}
	h.metrics.IncrementAcknowledged(string(d.Severity))

	cid := correlation.New(id.DomainDecision)
	h.emitAudit(ctx, org, "acknowledge", d.ID.String(), cid)
	h.logger.InfoContext(ctx, "decision acknowledged",
		"request_id", requestcontext.RequestID(ctx),
		"org_id", org.String(),
		"decision_id", d.ID.String(),
		"actor", actor,
	)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(d), cid))
}

func (h *Handler) emitAudit(ctx context.Context, org id.OrgID, action, resourceID, correlationID string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		OrgID:         org,
		Domain:        id.DomainDecision,
		Action:        action,
		ResourceType:  "decision",
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
