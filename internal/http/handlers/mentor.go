package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mentora-backend/internal/http/response"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/services"
)

type MentorHandler struct {
	log     *logger.Logger
	mentors services.MentorService
}

func NewMentorHandler(log *logger.Logger, mentors services.MentorService) *MentorHandler {
	return &MentorHandler{
		log:     log.With("handler", "MentorHandler"),
		mentors: mentors,
	}
}

// POST /api/mentor/profile
func (h *MentorHandler) Apply(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	var req services.MentorApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.mentors.Apply(dbcFrom(c), rd.UserID, req)
	if err != nil {
		response.RespondAPIError(c, err, "mentor_apply_failed")
		return
	}
	response.RespondCreated(c, gin.H{"mentor": out})
}

// GET /api/mentor/profile
func (h *MentorHandler) GetProfile(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	out, err := h.mentors.GetByUserID(dbcFrom(c), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err, "mentor_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"mentor": out})
}

type reviewMentorRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// POST /api/admin/mentors/:id/review
func (h *MentorHandler) Review(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	profileID, ok := parseIDParam(c, "id", "invalid_mentor_id")
	if !ok {
		return
	}
	var req reviewMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.mentors.Review(dbcFrom(c), rd.Role, profileID, *req.Approve)
	if err != nil {
		response.RespondAPIError(c, err, "mentor_review_failed")
		return
	}
	h.log.Info("mentor reviewed", "mentor_id", profileID, "approved", *req.Approve, "reviewer_id", rd.UserID)
	response.RespondOK(c, gin.H{"mentor": out})
}
