package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/TwisterMc/JobTwister/internal/services"
	"github.com/TwisterMc/JobTwister/internal/utils"
)

type SettingsHandler struct {
	svc services.SettingsService
}

func NewSettingsHandler(svc services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type UpdateSettingsRequest struct {
	Theme       string          `json:"theme" binding:"required"`
	Preferences json.RawMessage `json:"preferences"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SettingsHandler.Update", "invalid request body", err))
		return
	}

	s, err := h.svc.Update(c.Request.Context(), req.Theme, datatypes.JSON(req.Preferences))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
