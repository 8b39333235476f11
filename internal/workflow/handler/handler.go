//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks TaskRepository,AuditEmitter
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"carebase/internal/shared/correlation"
	"carebase/internal/shared/envelope"
	"carebase/internal/shared/faults"
	"carebase/internal/shared/listquery"
	"carebase/internal/shared/repository"
	"carebase/internal/workflow/models"
	id "carebase/pkg/domain"
	audit "carebase/pkg/platform/audit"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// TaskRepository is the repository surface this handler consumes: full CRUD
// plus the complete verb. The action inventory comes from
// repository.ActionRepository.
type TaskRepository interface {
	repository.CrudRepository[models.Task, repository.ListParams, models.CreateTask, models.UpdateTask]
	repository.ActionRepository
	Complete(ctx context.Context, org id.OrgID, taskID uuid.UUID) (*models.Task, error)
}

// AuditEmitter records write operations; the audit publisher satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler wires task endpoints to the task repository.
type Handler struct {
	repo    TaskRepository
	auditor AuditEmitter
	logger  *slog.Logger
}

// New constructs a workflow handler with its dependencies.
func New(repo TaskRepository, auditor AuditEmitter, logger *slog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// Register mounts task endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tasks", h.HandleList)
	r.Post("/tasks", h.HandleCreate)
	r.Get("/tasks/{id}", h.HandleGet)
	r.Patch("/tasks/{id}", h.HandleUpdate)
	r.Delete("/tasks/{id}", h.HandleDelete)
	r.Post("/tasks/{id}/complete", h.HandleComplete)
}

// HandleList handles GET /tasks.
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
		h.logger.ErrorContext(ctx, "task list failed",
			"request_id", requestcontext.RequestID(ctx),
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "task page"))
		return
	}

	resp := envelope.NewList(FromModels(page.Items), correlation.New(id.DomainWorkflow))
	resp.Meta.Pagination = &envelope.Pagination{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      len(page.Items),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /tasks/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.repo.FindByID(ctx, org, uuid.UUID(taskID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "task"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(t), correlation.New(id.DomainWorkflow)))
}

// HandleCreate handles POST /tasks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTaskRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	t, err := h.repo.Create(ctx, org, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "task creation failed",
			"request_id", requestID,
			"org_id", org.String(),
			"error", err,
		)
		httputil.WriteError(w, faults.FromStore(err, "task"))
		return
	}

	cid := correlation.New(id.DomainWorkflow)
	h.emitAudit(ctx, org, audit.ActionCreate, t.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusCreated, envelope.New(FromModel(t), cid))
}

// HandleUpdate handles PATCH /tasks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)
	requestID := requestcontext.RequestID(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTaskRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	t, err := h.repo.Update(ctx, org, uuid.UUID(taskID), req.ToInput())
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "task"))
		return
	}

	cid := correlation.New(id.DomainWorkflow)
	h.emitAudit(ctx, org, audit.ActionUpdate, t.ID.String(), cid)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(t), cid))
}

// HandleDelete handles DELETE /tasks/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.repo.Delete(ctx, org, uuid.UUID(taskID)); err != nil {
		httputil.WriteError(w, faults.FromStore(err, "task"))
		return
	}

	h.emitAudit(ctx, org, audit.ActionDelete, taskID.String(), correlation.New(id.DomainWorkflow))
	w.WriteHeader(http.StatusNoContent)
}

// HandleComplete handles POST /tasks/{id}/complete.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := requestcontext.OrgID(ctx)

	taskID, err := id.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	t, err := h.repo.Complete(ctx, org, uuid.UUID(taskID))
	if err != nil {
		httputil.WriteError(w, faults.FromStore(err, "task"))
		return
	}

	cid := correlation.New(id.DomainWorkflow)
	h.emitAudit(ctx, org, "complete", t.ID.String(), cid)
	h.logger.InfoContext(ctx, "task completed",
		"request_id", requestcontext.RequestID(ctx),
		"org_id", org.String(),
		"task_id", t.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, envelope.New(FromModel(t), cid))
}

func (h *Handler) emitAudit(ctx context.Context, org id.OrgID, action, resourceID, correlationID string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		OrgID:         org,
		Domain:        id.DomainWorkflow,
		Action:        action,
		ResourceType:  "task",
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
