package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/http/response"
	"github.com/yungbote/mentora-backend/internal/platform/apierr"
	"github.com/yungbote/mentora-backend/internal/platform/ctxutil"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

type courseListQuery struct {
	Page       int      `form:"page"`
	Limit      int      `form:"limit"`
	Search     string   `form:"search"`
	Q          string   `form:"q"`
	CategoryID string   `form:"categoryId"`
	Level      string   `form:"level"`
	MinPrice   *float64 `form:"minPrice"`
	MaxPrice   *float64 `form:"maxPrice"`
	IsFree     *bool    `form:"isFree"`
	IsPremium  *bool    `form:"isPremium"`
	Status     string   `form:"status"`
	MentorID   string   `form:"mentorId"`
	SortBy     string   `form:"sortBy"`
	SortOrder  string   `form:"sortOrder"`
}

func (q courseListQuery) filters() (services.CourseFilters, error) {
	f := services.CourseFilters{
		Page:      q.Page,
		Limit:     q.Limit,
		Search:    strings.TrimSpace(q.Search),
		Level:     strings.TrimSpace(q.Level),
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		IsFree:    q.IsFree,
		IsPremium: q.IsPremium,
		Status:    strings.TrimSpace(q.Status),
		SortBy:    strings.TrimSpace(q.SortBy),
		SortOrder: strings.TrimSpace(q.SortOrder),
	}
	if s := strings.TrimSpace(q.CategoryID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("categoryId must be a uuid")
		}
		f.CategoryID = &id
	}
	if s := strings.TrimSpace(q.MentorID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("mentorId must be a uuid")
		}
		f.MentorID = &id
	}
	return f, nil
}

func (h *CourseHandler) bindFilters(c *gin.Context) (courseListQuery, services.CourseFilters, bool) {
	var q courseListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return q, services.CourseFilters{}, false
	}
	f, err := q.filters()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return q, f, false
	}
	return q, f, true
}

// respondServiceError logs server-side failures once and writes the error.
func (h *CourseHandler) respondServiceError(c *gin.Context, op string, err error, fallback string) {
	if apierr.StatusOf(err) >= http.StatusInternalServerError {
		h.log.Error(op+" failed", append(ctxutil.LogFields(c.Request.Context()), "error", err)...)
	}
	response.RespondAPIError(c, err, fallback)
}

// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	_, filters, ok := h.bindFilters(c)
	if !ok {
		return
	}
	out, err := h.courseService.GetAllCourses(dbcFrom(c), filters)
	if err != nil {
		h.respondServiceError(c, "ListCourses", err, "list_courses_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/courses/search?q=
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	q, filters, ok := h.bindFilters(c)
	if !ok {
		return
	}
	term := strings.TrimSpace(q.Q)
	if term == "" {
		term = filters.Search
	}
	out, err := h.courseService.SearchCourses(dbcFrom(c), term, filters)
	if err != nil {
		h.respondServiceError(c, "SearchCourses", err, "search_courses_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/courses/featured
func (h *CourseHandler) FeaturedCourses(c *gin.Context) {
	var q struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	out, err := h.courseService.GetFeaturedCourses(dbcFrom(c), q.Limit)
	if err != nil {
		h.respondServiceError(c, "FeaturedCourses", err, "featured_courses_failed")
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}

// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	var (
		out *services.CourseView
		err error
	)
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		out, err = h.courseService.GetCourseByIDForViewer(dbcFrom(c), courseID, rd.UserID, rd.Role)
	} else {
		out, err = h.courseService.GetCourseByID(dbcFrom(c), courseID, false)
	}
	if err != nil {
		h.respondServiceError(c, "GetCourse", err, "get_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"course": out})
}

// GET /api/courses/slug/:slug
func (h *CourseHandler) GetCourseBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	var (
		out *services.CourseView
		err error
	)
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		out, err = h.courseService.GetCourseBySlugForViewer(dbcFrom(c), slug, rd.UserID, rd.Role)
	} else {
		out, err = h.courseService.GetCourseBySlug(dbcFrom(c), slug, false)
	}
	if err != nil {
		h.respondServiceError(c, "GetCourseBySlug", err, "get_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"course": out})
}

// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	var req services.CreateCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.courseService.CreateCourse(dbcFrom(c), rd.UserID, req)
	if err != nil {
		h.respondServiceError(c, "CreateCourse", err, "create_course_failed")
		return
	}
	response.RespondCreated(c, gin.H{"course": out})
}

// PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	var req services.UpdateCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.courseService.UpdateCourse(dbcFrom(c), courseID, rd.UserID, rd.Role, req)
	if err != nil {
		h.respondServiceError(c, "UpdateCourse", err, "update_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"course": out})
}

// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	if err := h.courseService.DeleteCourse(dbcFrom(c), courseID, rd.UserID, rd.Role); err != nil {
		h.respondServiceError(c, "DeleteCourse", err, "delete_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/courses/:id/publish
func (h *CourseHandler) PublishCourse(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	out, err := h.courseService.PublishCourse(dbcFrom(c), courseID, rd.UserID, rd.Role)
	if err != nil {
		h.respondServiceError(c, "PublishCourse", err, "publish_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"course": out})
}

// POST /api/courses/:id/archive
func (h *CourseHandler) ArchiveCourse(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	out, err := h.courseService.ArchiveCourse(dbcFrom(c), courseID, rd.UserID, rd.Role)
	if err != nil {
		h.respondServiceError(c, "ArchiveCourse", err, "archive_course_failed")
		return
	}
	response.RespondOK(c, gin.H{"course": out})
}

// GET /api/courses/:id/statistics
func (h *CourseHandler) CourseStatistics(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	courseID, ok := parseIDParam(c, "id", "invalid_course_id")
	if !ok {
		return
	}
	dbc := dbcFrom(c)
	if _, err := h.courseService.CheckCourseOwner(dbc, courseID, rd.UserID, rd.Role); err != nil {
		h.respondServiceError(c, "CourseStatistics", err, "course_statistics_failed")
		return
	}
	out, err := h.courseService.GetCourseStatistics(dbc, courseID)
	if err != nil {
		h.respondServiceError(c, "CourseStatistics", err, "course_statistics_failed")
		return
	}
	response.RespondOK(c, gin.H{"statistics": out})
}

// GET /api/mentor/courses
func (h *CourseHandler) MentorCourses(c *gin.Context) {
	rd := requireCaller(c)
	if rd == nil {
		return
	}
	out, err := h.courseService.GetMentorCourses(dbcFrom(c), rd.UserID, true)
	if err != nil {
		h.respondServiceError(c, "MentorCourses", err, "mentor_courses_failed")
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}
