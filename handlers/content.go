package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/config"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/storage"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/logger"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/metrics"
	"github.com/ketaqwaan/ketaqwaan/backend/go-services/pkg/middleware"
)

// ContentHandler serves the versioned content sections. Every section gets
// the same four routes: public GET of the active version, admin POST for a
// new version, admin PUT to patch a version in place, and an image upload.
type ContentHandler struct {
	cfg     *config.Config
	stores  []*content.Store
	uploads *storage.MinIOStorage // nil when object storage is not configured
}

func NewContentHandler(cfg *config.Config, stores []*content.Store, uploads *storage.MinIOStorage) *ContentHandler {
	return &ContentHandler{cfg: cfg, stores: stores, uploads: uploads}
}

func (h *ContentHandler) Register(rg *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	for _, store := range h.stores {
		grp := rg.Group("/" + store.Type().Name)
		grp.GET("", h.getActive(store))
		grp.POST("", auth, admin, h.create(store))
		grp.PUT("/:id", auth, admin, h.patch(store))
		grp.POST("/upload-image", auth, admin, h.uploadImage(store))
	}
}

func (h *ContentHandler) getActive(store *content.Store) gin.HandlerFunc {
	t := store.Type()
	return func(c *gin.Context) {
		doc, err := store.GetActive(c.Request.Context())
		if err != nil {
			if err == content.ErrNotFound {
				metrics.ContentReads.WithLabelValues(t.Name, "miss").Inc()
				c.JSON(http.StatusNotFound, gin.H{"message": t.Label + " data not found"})
				return
			}
			metrics.ContentReads.WithLabelValues(t.Name, "error").Inc()
			logger.Errorf("get %s error: %v", t.Name, err)
			h.serverError(c, err)
			return
		}
		metrics.ContentReads.WithLabelValues(t.Name, "hit").Inc()
		c.JSON(http.StatusOK, gin.H{t.JSONKey: doc})
	}
}

func (h *ContentHandler) create(store *content.Store) gin.HandlerFunc {
	t := store.Type()
	return func(c *gin.Context) {
		var doc content.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		created, err := store.CreateVersion(c.Request.Context(), doc, middleware.CurrentUser(c).ID)
		if err != nil {
			if ve, ok := content.AsValidationError(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
				return
			}
			logger.Errorf("create %s error: %v", t.Name, err)
			h.serverError(c, err)
			return
		}
		metrics.ContentWrites.WithLabelValues(t.Name, "create").Inc()
		c.JSON(http.StatusCreated, gin.H{
			"message": t.Label + " created successfully",
			t.JSONKey: created,
		})
	}
}

func (h *ContentHandler) patch(store *content.Store) gin.HandlerFunc {
	t := store.Type()
	return func(c *gin.Context) {
		var doc content.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		updated, err := store.PatchVersion(c.Request.Context(), c.Param("id"), doc, middleware.CurrentUser(c).ID)
		if err != nil {
			if err == content.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"message": t.Label + " not found"})
				return
			}
			if ve, ok := content.AsValidationError(err); ok {
				c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
				return
			}
			logger.Errorf("update %s error: %v", t.Name, err)
			h.serverError(c, err)
			return
		}
		metrics.ContentWrites.WithLabelValues(t.Name, "update").Inc()
		c.JSON(http.StatusOK, gin.H{
			"message": t.Label + " updated successfully",
			t.JSONKey: updated,
		})
	}
}

func (h *ContentHandler) uploadImage(store *content.Store) gin.HandlerFunc {
	t := store.Type()
	return func(c *gin.Context) {
		if h.uploads == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image storage is not configured"})
			return
		}
		header, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided"})
			return
		}
		file, err := header.Open()
		if err != nil {
			logger.Errorf("upload %s open error: %v", t.Name, err)
			h.serverError(c, err)
			return
		}
		defer file.Close()

		key := fmt.Sprintf("%s/%d-%s", t.Name, time.Now().UnixNano(), filepath.Base(header.Filename))
		contentType := header.Header.Get("Content-Type")
		if err := h.uploads.UploadFile(c.Request.Context(), key, file, header.Size, contentType); err != nil {
			logger.Errorf("upload %s error: %v", t.Name, err)
			h.serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Image uploaded successfully",
			"imageUrl": h.uploads.ObjectURL(key),
			"publicId": key,
		})
	}
}

func (h *ContentHandler) serverError(c *gin.Context, err error) {
	resp := gin.H{"message": "Server error"}
	if !h.cfg.IsProduction() {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
