// internal/app/features/requests/handler.go
package requests

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/apollo/internal/app/store/audit"
	requeststore "github.com/dalemusser/apollo/internal/app/store/requests"
	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/app/system/authz"
	"github.com/dalemusser/apollo/internal/app/system/htmlsanitize"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/inputval"
	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of *requeststore.Store used here.
type Store interface {
	List(ctx context.Context) ([]models.Request, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error)
	Create(ctx context.Context, req models.Request) (models.Request, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.Request) (models.Request, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Handler serves the /request resource.
type Handler struct {
	Requests Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(requests Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Requests: requests, AuditLog: audit, Log: logger}
}

// requestInput is the body of POST and PUT. Empty statuses take the
// defaults (status "Pendente", every bureau "andamento").
type requestInput struct {
	CPFCNPJ  string `json:"cpf_cnpj" validate:"required,cpfcnpj"`
	Name     string `json:"name" validate:"required,min=2,max=160"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=13"`
	Status   string `json:"status" validate:"max=40"`
	Serasa   string `json:"serasa" validate:"omitempty,bureau"`
	BoaVista string `json:"boa_vista" validate:"omitempty,bureau"`
	Cenprot  string `json:"cenprot" validate:"omitempty,bureau"`
	SPC      string `json:"spc" validate:"omitempty,bureau"`
}

func (in *requestInput) normalize() {
	in.CPFCNPJ = normalize.Document(in.CPFCNPJ)
	in.Name = normalize.Name(htmlsanitize.Text(in.Name))
	in.Phone = normalize.Phone(in.Phone)
	in.Status = normalize.Name(htmlsanitize.Text(in.Status))
	for _, s := range []*string{&in.Serasa, &in.BoaVista, &in.Cenprot, &in.SPC} {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func (in requestInput) request() models.Request {
	req := models.Request{
		CPFCNPJ:  in.CPFCNPJ,
		Name:     in.Name,
		Phone:    in.Phone,
		Status:   in.Status,
		Serasa:   models.BureauStatus(in.Serasa),
		BoaVista: models.BureauStatus(in.BoaVista),
		Cenprot:  models.BureauStatus(in.Cenprot),
		SPC:      models.BureauStatus(in.SPC),
	}
	req.ApplyDefaults()
	return req
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (requestInput, bool) {
	var in requestInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return in, false
	}
	in.normalize()
	fields, err := inputval.Struct(in)
	if err != nil {
		h.Log.Error("request: validation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return in, false
	}
	if fields != nil {
		httpjson.Invalid(w, fields)
		return in, false
	}
	return in, true
}

func requestID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList handles GET /request.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list requests")
	defer cancel()

	reqs, err := h.Requests.List(ctx)
	if err != nil {
		h.Log.Error("list requests", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	for i := range reqs {
		reqs[i].ApplyDefaults()
	}
	httpjson.Write(w, http.StatusOK, reqs)
}

// ServeGet handles GET /request/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get request")
	defer cancel()

	req, err := h.Requests.GetByID(ctx, id)
	if errors.Is(err, requeststore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		h.Log.Error("get request", zap.Error(err), zap.String("request_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	req.ApplyDefaults()
	httpjson.Write(w, http.StatusOK, req)
}

// HandleCreate handles POST /request (CREATE REQUESTS).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	req := in.request()
	_, actorID, signedIn := authz.UserCtx(r)
	if signedIn {
		req.CreatedBy = &actorID
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create request")
	defer cancel()

	req, err := h.Requests.Create(ctx, req)
	if err != nil {
		h.Log.Error("create request", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if signedIn {
		h.AuditLog.Changed(ctx, r, audit.EventRequestCreated, actorID, req.ID)
	}
	httpjson.Write(w, http.StatusCreated, req)
}

// HandleUpdate handles PUT /request/{id} (UPDATE REQUESTS).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update request")
	defer cancel()

	req, err := h.Requests.Update(ctx, id, in.request())
	if errors.Is(err, requeststore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		h.Log.Error("update request", zap.Error(err), zap.String("request_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.Changed(ctx, r, audit.EventRequestUpdated, actorID, id)
	}
	httpjson.Write(w, http.StatusOK, req)
}

// HandleDelete handles DELETE /request/{id} (DELETE REQUESTS).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete request")
	defer cancel()

	n, err := h.Requests.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete request", zap.Error(err), zap.String("request_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "request not found")
		return
	}
	if _, actorID, ok := authz.UserCtx(r); ok {
		h.AuditLog.Changed(ctx, r, audit.EventRequestDeleted, actorID, id)
	}
	httpjson.NoContent(w)
}
