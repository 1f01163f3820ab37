package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/middleware"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.CreateAppointment)
	rg.GET("/appointments", h.ListAppointments)
	rg.GET("/appointments/:id", h.GetAppointment)
	rg.POST("/appointments/:id/cancel", h.CancelAppointment)
	rg.POST("/appointments/:id/complete", h.CompleteAppointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, slot, err := h.service.CreateAppointment(c.Request.Context(), p.ID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Selected slot does not match the chosen service")
		case ErrSlotUnavailable, ErrSlotNotFound:
			// lost race or stale pick; both mean "choose another time"
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "This time is no longer available, please pick another slot")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"appointment_id": a.ID,
		"slot_time":      slot.Time,
	})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	appointments, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list appointments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": appointments})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid appointment id")
		return
	}

	a, err := h.service.Get(c.Request.Context(), id, p)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid appointment id")
		return
	}

	a, err := h.service.Cancel(c.Request.Context(), id, p)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		case ErrAlreadyCancelled:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Appointment is already cancelled")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Completed appointments cannot be cancelled")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid appointment id")
		return
	}

	a, err := h.service.Complete(c.Request.Context(), id, p)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only planners can complete appointments")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only scheduled appointments can be completed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to complete appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}
