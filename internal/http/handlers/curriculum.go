package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mentora-backend/internal/http/response"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/services"
)

type CurriculumHandler struct {
	log        *logger.Logger
	curriculum services.CurriculumService
}

func NewCurriculumHandler(log *logger.Logger, curriculum services.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{
		log:        log.With("handler", "CurriculumHandler"),
		curriculum: curriculum,
	}
}

// POST /api/courses/:id/sections
func (h *CurriculumHandler) CreateSection(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	var req services.CreateSectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.curriculum.CreateSection(dbcFrom(c), courseID, rd.UserID, rd.Role, req)
	if err != nil {
		h.log.Warn("CreateSection failed", "error", err, "course_id", courseID)
		response.RespondAPIError(c, err, "create_section_failed")
		return
	}
	response.RespondCreated(c, gin.H{"section": out})
}

// POST /api/sections/:id/materials
func (h *CurriculumHandler) CreateMaterial(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "invalid_section_id")
	if !ok {
		return
	}
	var req services.CreateMaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.curriculum.CreateMaterial(dbcFrom(c), sectionID, rd.UserID, rd.Role, req)
	if err != nil {
		h.log.Warn("CreateMaterial failed", "error", err, "section_id", sectionID)
		response.RespondAPIError(c, err, "create_material_failed")
		return
	}
	response.RespondCreated(c, gin.H{"material": out})
}
