package slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.ListAvailable)
}

type slotItem struct {
	ID   int64  `json:"id"`
	Time string `json:"time"`
}

func (h *Handler) ListAvailable(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Query("serviceId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid serviceId")
		return
	}

	found, err := h.service.ListAvailable(c.Request.Context(), serviceID, c.Query("date"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load slots")
		return
	}

	items := make([]slotItem, 0, len(found))
	for _, s := range found {
		items = append(items, slotItem{ID: s.ID, Time: s.Time})
	}

	response.Success(c, http.StatusOK, gin.H{"slots": items})
}
