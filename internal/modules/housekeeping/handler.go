package housekeeping

import (
	"net/http"
	"time"

	"hotelier/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/housekeeping/sweep", h.RunSweep)
}

// RunSweep triggers the daily reconciliation on demand, same pass the
// scheduler runs at night.
func (h *Handler) RunSweep(c *gin.Context) {
	res, err := h.service.Sweep(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Sweep failed")
		return
	}
	response.Success(c, http.StatusOK, res)
}
