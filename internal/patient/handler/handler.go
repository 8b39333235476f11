package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carebase/internal/patient/metrics"
	"carebase/internal/patient/models"
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

// PatientRepository is the repository surface this handler consumes.
type PatientRepository = repository.CrudRepository[models.Patient, repository.ListParams, models.CreatePatient, models.UpdatePatient]

// AuditEmitter records write operations; the audit publisher satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler wires patient endpoints to the patient repository.
type Handler struct {
	repo    PatientRepository
	auditor AuditEmitter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a patient handler with its dependencies.
func New(repo PatientRepository, auditor AuditEmitter, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts patient endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/patients", h.HandleList)
	r.Post("/patients", h.HandleCreate)
	r.Get("/patients/{id}", h.HandleGet)
	r.Patch("/patients/{id}", h.HandleUpdate)
	r.Delete("/patients/{id}", h.HandleDelete)
}

// HandleList handles GET /patients.
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
		h.logger.ErrorContext(ctx, "patient list failed",
			"request_id", requestcontext.RequestID(ctx),
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "patient page"))
		return
	}
	h.metrics.ObserveList(start)

	resp := envelope.NewList(FromModels(page.Items), correlation.New(id.DomainPatient))
	resp.Meta.Pagination = &envelope.Pagination{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      len(page.Items),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /patients/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.repo.FindByID(ctx, org, uuid.UUID(patientID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "patient"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(p), correlation.New(id.DomainPatient)))
}

// HandleCreate handles POST /patients.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreatePatientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.repo.Create(ctx, org, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "patient creation failed",
			"request_id", requestID,
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "patient"))
		return
	}
	h.metrics.IncrementPatientsCreated()

	cid := correlation.New(id.DomainPatient)
	h.emitAudit(ctx, org, audit.ActionCreate, p.ID.String(), cid)
	h.logger.InfoContext(ctx, "patient created",
		"request_id", requestID,
		"org_id", org.String(),
		"patient_id", p.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, envelope.New(FromModel(p), cid))
}

// HandleUpdate handles PATCH /patients/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdatePatientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.repo.Update(ctx, org, uuid.UUID(patientID), req.ToInput())
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "patient"))
		return
	}

	cid := correlation.New(id.DomainPatient)
	h.emitAudit(ctx, org, audit.ActionUpdate, p.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(p), cid))
}

// HandleDelete handles DELETE /patients/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.repo.Delete(ctx, org, uuid.UUID(patientID)); err != nil {
		httputil.WriteError(w, faults.FromStore(err, "patient"))
		return
	}

	h.emitAudit(ctx, org, audit.ActionDelete, patientID.String(), correlation.New(id.DomainPatient))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) emitAudit(ctx context.Context, org id.OrgID, action, resourceID, correlationID string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		OrgID:         org,
		Domain:        id.DomainPatient,
		Action:        action,
		ResourceType:  "patient",
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
