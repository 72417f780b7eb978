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
)

type CreateSectionInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Order       *int   `json:"order" validate:"omitnil,gte=0"`
}

type CreateMaterialInput struct {
	Title         string `json:"title" validate:"required,max=200"`
	Type          string `json:"type" validate:"required,oneof=VIDEO DOCUMENT QUIZ ASSIGNMENT"`
	ContentURL    string `json:"contentUrl"`
	Content       string `json:"content"`
	Duration      int    `json:"duration" validate:"gte=0"`
	Order         *int   `json:"order" validate:"omitnil,gte=0"`
	IsFreePreview bool   `json:"isFreePreview"`
}

// CurriculumService authors sections and materials. Ownership rules match
// CourseService.UpdateCourse.
type CurriculumService interface {
	CreateSection(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string, in CreateSectionInput) (*SectionView, error)
	CreateMaterial(dbc dbctx.Context, sectionID, userID uuid.UUID, userRole string, in CreateMaterialInput) (*MaterialView, error)
}

type curriculumService struct {
	db  *gorm.DB
	log *logger.Logger
	tx  db.TxRunner

	courses   CourseService
	sections  repos.SectionRepo
	materials repos.MaterialRepo
}

func NewCurriculumService(
	database *gorm.DB,
	baseLog *logger.Logger,
	tx db.TxRunner,
	courseService CourseService,
	sectionRepo repos.SectionRepo,
	materialRepo repos.MaterialRepo,
) CurriculumService {
	return &curriculumService{
		db:        database,
		log:       baseLog.With("service", "CurriculumService"),
		tx:        tx,
		courses:   courseService,
		sections:  sectionRepo,
		materials: materialRepo,
	}
}

func (s *curriculumService) CreateSection(dbc dbctx.Context, courseID, userID uuid.UUID, userRole string, in CreateSectionInput) (*SectionView, error) {
	var created *types.Section
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		c, err := s.courses.AuthorizeCourseOwner(txc, courseID, userID, userRole)
		if err != nil {
			return err
		}
		if err := validateInput("invalid_section_input", in); err != nil {
			return err
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else if order, err = s.sections.NextPosition(txc, c.ID); err != nil {
			return fmt.Errorf("next section position: %w", err)
		}

		row := &types.Section{
			ID:          uuid.New(),
			CourseID:    c.ID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Order:       order,
		}
		if _, err := s.sections.Create(txc, []*types.Section{row}); err != nil {
			return db.MapError("create_section", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("section created", "section_id", created.ID, "course_id", created.CourseID)
	return &SectionView{
		ID:          created.ID,
		Title:       created.Title,
		Description: created.Description,
		Order:       created.Order,
		Duration:    created.Duration,
		Materials:   []MaterialView{},
	}, nil
}

// CreateMaterial also adds the material's duration to its section, which is
// what PublishCourse sums.
func (s *curriculumService) CreateMaterial(dbc dbctx.Context, sectionID, userID uuid.UUID, userRole string, in CreateMaterialInput) (*MaterialView, error) {
	var created *types.Material
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		section, err := s.sections.GetByID(txc, sectionID)
		if err != nil {
			return fmt.Errorf("load section: %w", err)
		}
		if section == nil {
			return apierr.NotFound("section_not_found", "Section not found")
		}
		if _, err := s.courses.AuthorizeCourseOwner(txc, section.CourseID, userID, userRole); err != nil {
			return err
		}
		if err := validateInput("invalid_material_input", in); err != nil {
			return err
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else if order, err = s.materials.NextPosition(txc, section.ID); err != nil {
			return fmt.Errorf("next material position: %w", err)
		}

		row := &types.Material{
			ID:            uuid.New(),
			SectionID:     section.ID,
			Title:         strings.TrimSpace(in.Title),
			Type:          in.Type,
			ContentURL:    in.ContentURL,
			Content:       in.Content,
			Duration:      in.Duration,
			Order:         order,
			IsFreePreview: in.IsFreePreview,
		}
		if _, err := s.materials.Create(txc, []*types.Material{row}); err != nil {
			return db.MapError("create_material", err)
		}
		if err := s.sections.AddDuration(txc, section.ID, row.Duration); err != nil {
			return db.MapError("update_section_duration", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("material created", "material_id", created.ID, "section_id", created.SectionID)
	out := formatMaterial(created)
	return &out, nil
}
