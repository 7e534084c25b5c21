package handlers

import (
	"log"
	"net/http"

	"quizbowl_backend/middleware"
	"quizbowl_backend/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories CategoryStore
}

func NewCategoryHandler(categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Error fetching categories: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		NameRU: req.NameRU,
		NameKY: req.NameKY,
		DescRU: optionalString(req.DescRU),
		DescKY: optionalString(req.DescKY),
	}
	id, err := h.categories.CreateCategory(c.Request.Context(), &category)
	if err != nil {
		log.Printf("[%s] Error creating category: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		ID:     categoryID,
		NameRU: req.NameRU,
		NameKY: req.NameKY,
		DescRU: optionalString(req.DescRU),
		DescKY: optionalString(req.DescKY),
	}
	if err := h.categories.UpdateCategory(c.Request.Context(), &category); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("[%s] Error updating category: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		log.Printf("[%s] Error deleting category: %v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
