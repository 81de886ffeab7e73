package closed_days

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
	msgInvalidID          = "invalid closed day id"
	msgClosedDayNotFound  = "closed day not found"
)

// defaultListRangeDays окно списка по умолчанию, когда границы не заданы
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

// HandleList GET /api/v1/admin/closed-days?from=YYYY-MM-DD&to=YYYY-MM-DD
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

	days, err := h.service.ListClosedDays(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /admin/closed-days - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainClosedDayList(days))
}

// HandleCreate POST /api/v1/admin/closed-days
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateClosedDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/closed-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	closedDay := &domain.ClosedDay{
		IsRecurring: req.IsRecurring,
		Reason:      req.Reason,
	}
	if req.IsRecurring {
		if req.DayOfWeek != nil {
			weekday := time.Weekday(*req.DayOfWeek)
			closedDay.DayOfWeek = &weekday
		}
	} else {
		date, err := time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		closedDay.Date = date
	}

	day, err := h.service.CreateClosedDay(r.Context(), closedDay)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/closed-days - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/closed-days - Closed (recurring=%t)", req.IsRecurring)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainClosedDay(day))
}

// HandleDelete DELETE /api/v1/admin/closed-days/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteClosedDay(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrClosedDayNotFound) {
			handlers.RespondNotFound(w, msgClosedDayNotFound)
			return
		}
		h.logger.Error("DELETE /admin/closed-days/%d - Failed: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/closed-days/%d - Reopened", id)
	w.WriteHeader(http.StatusNoContent)
}
