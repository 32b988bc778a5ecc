package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/settings"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/logger"
)

// SettingsHandler serves the singleton site-configuration sections. GET is
// public and always succeeds (defaults are seeded at startup); PUT merges a
// whitelisted partial update.
type SettingsHandler struct {
	cfg   *config.Config
	store *settings.Store
}

func NewSettingsHandler(cfg *config.Config, store *settings.Store) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, store: store}
}

func (h *SettingsHandler) Register(rg *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	rg.GET("/navbar", h.GetNavbar)
	rg.PUT("/navbar", auth, admin, h.UpdateNavbar)
	rg.GET("/footer", h.GetFooter)
	rg.PUT("/footer", auth, admin, h.UpdateFooter)
	rg.GET("/informasi", h.GetInformasi)
	rg.PUT("/informasi", auth, admin, h.UpdateInformasi)
	rg.GET("/saran", h.GetSaran)
	rg.PUT("/saran", auth, admin, h.UpdateSaran)
}

func (h *SettingsHandler) GetNavbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"navbar": h.store.Navbar()})
}

func (h *SettingsHandler) UpdateNavbar(c *gin.Context) {
	var p settings.NavbarPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	updated, err := h.store.UpdateNavbar(c.Request.Context(), p)
	if err != nil {
		h.updateError(c, "navbar", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Navbar updated successfully", "navbar": updated})
}

func (h *SettingsHandler) GetFooter(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"footer": h.store.Footer()})
}

func (h *SettingsHandler) UpdateFooter(c *gin.Context) {
	var p settings.FooterPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	updated, err := h.store.UpdateFooter(c.Request.Context(), p)
	if err != nil {
		h.updateError(c, "footer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Footer updated successfully", "footer": updated})
}

func (h *SettingsHandler) GetInformasi(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"informasi": h.store.Informasi()})
}

func (h *SettingsHandler) UpdateInformasi(c *gin.Context) {
	var p settings.InformasiPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	updated, err := h.store.UpdateInformasi(c.Request.Context(), p)
	if err != nil {
		h.updateError(c, "informasi", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Informasi updated successfully", "informasi": updated})
}

func (h *SettingsHandler) GetSaran(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"saran": h.store.Saran()})
}

func (h *SettingsHandler) UpdateSaran(c *gin.Context) {
	var p settings.SaranPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	updated, err := h.store.UpdateSaran(c.Request.Context(), p)
	if err != nil {
		h.updateError(c, "saran", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Saran updated successfully", "saran": updated})
}

func (h *SettingsHandler) updateError(c *gin.Context, key string, err error) {
	if ve, ok := content.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
		return
	}
	logger.Errorf("update %s error: %v", key, err)
	resp := gin.H{"message": "Server error"}
	if !h.cfg.IsProduction() {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
