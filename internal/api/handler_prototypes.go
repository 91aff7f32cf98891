package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expo-registry-backend/internal/store"
)

// CreatePrototype handles POST /prototipos.
func (h *Handler) CreatePrototype(c *gin.Context) {
	var req store.PrototypeInput
	if !bindBody(c, &req) {
		return
	}

	prototype, err := h.store.CreatePrototype(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "prototype created successfully", "data": prototype})
}

// ListPrototypes handles GET /prototipos.
func (h *Handler) ListPrototypes(c *gin.Context) {
	prototypes, err := h.store.ListPrototypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prototypes)
}

// GetPrototype handles GET /prototipos/:id.
func (h *Handler) GetPrototype(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	prototype, err := h.store.GetPrototype(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prototype)
}

// ListExhibitorPrototypes handles GET /expositores/:id/prototipos.
func (h *Handler) ListExhibitorPrototypes(c *gin.Context) {
	exhibitorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	prototypes, err := h.store.ListPrototypesByExhibitor(c.Request.Context(), exhibitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prototypes)
}

// UpdatePrototype handles PUT /prototipos/:id.
func (h *Handler) UpdatePrototype(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req store.PrototypeInput
	if !bindBody(c, &req) {
		return
	}

	prototype, err := h.store.UpdatePrototype(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prototype updated successfully", "data": prototype})
}

// DeletePrototype handles DELETE /prototipos/:id.
func (h *Handler) DeletePrototype(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeletePrototype(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prototype deleted successfully"})
}
