package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expo-registry-backend/internal/store"
)

// CreateExhibitor handles POST /expositores.
func (h *Handler) CreateExhibitor(c *gin.Context) {
	var req store.ExhibitorInput
	if !bindBody(c, &req) {
		return
	}

	exhibitor, err := h.store.CreateExhibitor(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "exhibitor created successfully", "data": exhibitor})
}

// ListExhibitors handles GET /expositores.
func (h *Handler) ListExhibitors(c *gin.Context) {
	exhibitors, err := h.store.ListExhibitors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitors)
}

// GetExhibitor handles GET /expositores/:id.
func (h *Handler) GetExhibitor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	exhibitor, err := h.store.GetExhibitor(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exhibitor)
}

// UpdateExhibitor handles PUT /expositores/:id.
func (h *Handler) UpdateExhibitor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req store.ExhibitorInput
	if !bindBody(c, &req) {
		return
	}

	exhibitor, err := h.store.UpdateExhibitor(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exhibitor updated successfully", "data": exhibitor})
}

// DeleteExhibitor handles DELETE /expositores/:id. The exhibitor's
// prototypes are deleted with it.
func (h *Handler) DeleteExhibitor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteExhibitor(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exhibitor deleted successfully"})
}
