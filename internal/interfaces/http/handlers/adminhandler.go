package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planwise-io/planwise/internal/application/subscription/usecases"
	"github.com/planwise-io/planwise/internal/shared/logger"
	"github.com/planwise-io/planwise/internal/shared/utils"
)

// AdminHandler exposes operational endpoints that are normally driven by the
// background worker, so a pass can be forced manually.
type AdminHandler struct {
	transitionExpiredUC *usecases.TransitionExpiredUseCase
	logger              logger.Interface
}

func NewAdminHandler(transitionExpiredUC *usecases.TransitionExpiredUseCase) *AdminHandler {
	return &AdminHandler{
		transitionExpiredUC: transitionExpiredUC,
		logger:              logger.NewLogger(),
	}
}

type RunTransitionsRequest struct {
	BatchSize int `json:"batch_size" binding:"omitempty,min=1"`
}

func (h *AdminHandler) RunTransitions(c *gin.Context) {
	var req RunTransitionsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for run transitions", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	report, err := h.transitionExpiredUC.Execute(c.Request.Context(), usecases.TransitionExpiredCommand{
		BatchSize: req.BatchSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transition pass completed", report)
}
