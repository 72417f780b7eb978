package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/data/repos"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/apierr"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
	"github.com/yungbote/mentora-backend/internal/platform/slug"
)

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CategoryService interface {
	List(dbc dbctx.Context) ([]*CategoryView, error)
	Create(dbc dbctx.Context, userRole string, in CreateCategoryInput) (*CategoryView, error)
}

type categoryService struct {
	db         *gorm.DB
	log        *logger.Logger
	categories repos.CategoryRepo
}

func NewCategoryService(database *gorm.DB, baseLog *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		db:         database,
		log:        baseLog.With("service", "CategoryService"),
		categories: categoryRepo,
	}
}

func (s *categoryService) List(dbc dbctx.Context) ([]*CategoryView, error) {
	rows, err := s.categories.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*CategoryView, 0, len(rows))
	for _, c := range rows {
		out = append(out, formatCategory(c))
	}
	return out, nil
}

func (s *categoryService) Create(dbc dbctx.Context, userRole string, in CreateCategoryInput) (*CategoryView, error) {
	if !isAdminRole(userRole) {
		return nil, apierr.Forbidden("admin_required", "Only admins can create categories")
	}
	if err := validateInput("invalid_category_input", in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	catSlug := slug.Make(name)
	if catSlug == "" {
		return nil, apierr.BadRequest("invalid_category_input", "name must contain letters or digits")
	}

	existing, err := s.categories.GetBySlug(dbc, catSlug)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if existing != nil {
		return nil, apierr.Conflict("category_exists", "category already exists")
	}

	row := &types.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        catSlug,
		Description: in.Description,
	}
	if _, err := s.categories.Create(dbc, []*types.Category{row}); err != nil {
		return nil, db.MapError("create_category", err)
	}
	s.log.Info("category created", "category_id", row.ID, "slug", row.Slug)
	return formatCategory(row), nil
}
