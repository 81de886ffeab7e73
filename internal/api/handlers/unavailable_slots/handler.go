package unavailable_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ign-garage/booking-service/internal/api/handlers"
	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "date must be in YYYY-MM-DD format"
	msgInvalidRange       = "from and to must be valid dates in YYYY-MM-DD format"
	msgInvalidID          = "invalid unavailable slot id"
	msgSlotNotFound       = "unavailable slot not found"
)

const defaultListRangeDays = 90

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/unavailable-slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, defaultListRangeDays)

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse(domain.DateFormat, raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse(domain.DateFormat, raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
	}

	slots, err := h.service.ListUnavailableSlots(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /admin/unavailable-slots - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainUnavailableSlotList(slots))
}

// HandleCreate POST /api/v1/admin/unavailable-slots
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateUnavailableSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/unavailable-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := req.ToDomainUnavailableSlot()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.CreateUnavailableSlot(r.Context(), slot)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/unavailable-slots - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/unavailable-slots - %s %s-%s blocked", req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainUnavailableSlot(created))
}

// HandleDelete DELETE /api/v1/admin/unavailable-slots/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteUnavailableSlot(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrUnavailableSlotNotFound) {
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("DELETE /admin/unavailable-slots/%d - Failed: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/unavailable-slots/%d - Unblocked", id)
	w.WriteHeader(http.StatusNoContent)
}
