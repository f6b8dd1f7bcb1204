package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Werneck0live/company-directory/internal/metrics"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
	"github.com/Werneck0live/company-directory/internal/utils"
)

const (
	requestTimeout = 5 * time.Second
	maxPageLimit   = 100
)

type Publisher interface {
	PublishEvent(ctx context.Context, ev models.CompanyEvent) error
}

type CompanyHandler struct {
	Store store.Store
	Pub   Publisher // nil = eventos desligados
	Log   *slog.Logger
}

func NewCompanyHandler(s store.Store, pub Publisher, log *slog.Logger) *CompanyHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CompanyHandler{Store: s, Pub: pub, Log: log}
}

func (h *CompanyHandler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *CompanyHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /companies?search=&industry=&location=&sort=&order=[&page=&limit=]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := query.FromValues(params)

	page, limit, paginate, err := parsePaging(params.Get("page"), params.Get("limit"))
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	list, err := h.Store.List(ctx, q)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	if !paginate {
		utils.WriteJSON(w, http.StatusOK, list)
		return
	}
	res := query.Paginate(list, page, limit)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(list)))
	utils.WriteJSON(w, http.StatusOK, res)
}

// página ausente = lista inteira; limit só vale junto com page
func parsePaging(pageRaw, limitRaw string) (page, limit int, paginate bool, err error) {
	if pageRaw == "" {
		return 0, 0, false, nil
	}
	page, err = strconv.Atoi(pageRaw)
	if err != nil {
		return 0, 0, false, errors.New("page must be an integer")
	}
	limit = query.PageSize
	if limitRaw != "" {
		limit, err = strconv.Atoi(limitRaw)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return 0, 0, false, errors.New("limit must be between 1 and 100")
		}
	}
	return page, limit, true, nil
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CompanyCreateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateCreateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	c := dto.toModel()
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	created, err := h.Store.Create(ctx, &c)
	metrics.ObserveMutation(models.ActionCreated, err)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.publishEvent(models.ActionCreated, created)
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	c, err := h.Store.Get(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto CompanyPatchDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validateUpdateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	updated, err := h.Store.Update(ctx, id, dto.toPatch())
	metrics.ObserveMutation(models.ActionUpdated, err)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.publishEvent(models.ActionUpdated, updated)
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var dto CompanyPutDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.FormatUnknownFieldError(err))
		return
	}
	if err := validatePutDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if dto.ID != nil && *dto.ID != id {
		utils.BadRequest(w, "id in body must match the resource id in path")
		return
	}

	// monta o documento COMPLETO que substituirá o atual (PUT = replace)
	doc := dto.toModel(id)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	replaced, err := h.Store.Replace(ctx, id, &doc)
	metrics.ObserveMutation(models.ActionUpdated, err)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.publishEvent(models.ActionUpdated, replaced)
	utils.WriteJSON(w, http.StatusOK, replaced)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	// Busca antes de deletar para o evento levar o nome
	c, err := h.Store.Get(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	err = h.Store.Delete(ctx, id)
	metrics.ObserveMutation(models.ActionDeleted, err)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.publishEvent(models.ActionDeleted, c)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateID):
		utils.WriteError(w, http.StatusConflict, "company id already exists")
	default:
		h.logger().Error("store_error", "err", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *CompanyHandler) publishEvent(action string, c *models.Company) {
	if h.Pub == nil || c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := h.Pub.PublishEvent(ctx, models.NewCompanyEvent(action, c))
	metrics.ObservePublish(err)
	if err != nil {
		h.logger().Warn("event_publish_failed", "action", action, "company_id", c.ID, "err", err)
	}
}
