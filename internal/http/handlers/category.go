package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mentora-backend/internal/http/response"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/services"
)

type CategoryHandler struct {
	log        *logger.Logger
	categories services.CategoryService
}

func NewCategoryHandler(log *logger.Logger, categories services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		log:        log.With("handler", "CategoryHandler"),
		categories: categories,
	}
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	out, err := h.categories.List(dbcFrom(c))
	if err != nil {
		h.log.Error("ListCategories failed", "error", err)
		response.RespondAPIError(c, err, "list_categories_failed")
		return
	}
	response.RespondOK(c, gin.H{"categories": out})
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	var req services.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.categories.Create(dbcFrom(c), rd.Role, req)
	if err != nil {
		response.RespondAPIError(c, err, "create_category_failed")
		return
	}
	response.RespondCreated(c, gin.H{"category": out})
}
