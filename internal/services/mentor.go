package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/data/repos"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/apierr"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
	"github.com/yungbote/mentora-backend/internal/platform/logger"
)

type MentorApplicationInput struct {
	Headline  string `json:"headline" validate:"required,max=200"`
	Bio       string `json:"bio"`
	Expertise string `json:"expertise"`
}

type MentorService interface {
	Apply(dbc dbctx.Context, userID uuid.UUID, in MentorApplicationInput) (*MentorView, error)
	Review(dbc dbctx.Context, reviewerRole string, profileID uuid.UUID, approve bool) (*MentorView, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*MentorView, error)
}

type mentorService struct {
	db  *gorm.DB
	log *logger.Logger
	tx  db.TxRunner

	users   repos.UserRepo
	mentors repos.MentorProfileRepo
	now     func() time.Time
}

func NewMentorService(
	database *gorm.DB,
	baseLog *logger.Logger,
	tx db.TxRunner,
	userRepo repos.UserRepo,
	mentorRepo repos.MentorProfileRepo,
) MentorService {
	return &mentorService{
		db:      database,
		log:     baseLog.With("service", "MentorService"),
		tx:      tx,
		users:   userRepo,
		mentors: mentorRepo,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *mentorService) Apply(dbc dbctx.Context, userID uuid.UUID, in MentorApplicationInput) (*MentorView, error) {
	if err := validateInput("invalid_mentor_input", in); err != nil {
		return nil, err
	}
	var profileID uuid.UUID
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		u, err := s.users.GetByID(txc, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			return apierr.NotFound("user_not_found", "User not found")
		}
		existing, err := s.mentors.GetByUserID(txc, userID)
		if err != nil {
			return fmt.Errorf("load mentor profile: %w", err)
		}
		if existing != nil {
			return apierr.Conflict("mentor_profile_exists", "mentor profile already exists")
		}
		row := &types.MentorProfile{
			ID:        uuid.New(),
			UserID:    userID,
			Headline:  strings.TrimSpace(in.Headline),
			Bio:       in.Bio,
			Expertise: in.Expertise,
			Status:    types.MentorStatusPending,
		}
		if _, err := s.mentors.Create(txc, []*types.MentorProfile{row}); err != nil {
			return db.MapError("create_mentor_profile", err)
		}
		profileID = row.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("mentor application received", "user_id", userID, "mentor_id", profileID)
	return s.view(dbc, profileID)
}

// Review approves or rejects a profile. Approval promotes a student account
// to the mentor role.
func (s *mentorService) Review(dbc dbctx.Context, reviewerRole string, profileID uuid.UUID, approve bool) (*MentorView, error) {
	if !isAdminRole(reviewerRole) {
		return nil, apierr.Forbidden("admin_required", "Only admins can review mentor applications")
	}
	err := s.tx.InTx(dbc, func(txc dbctx.Context) error {
		profile, err := s.mentors.GetByID(txc, profileID)
		if err != nil {
			return fmt.Errorf("load mentor profile: %w", err)
		}
		if profile == nil {
			return apierr.NotFound("mentor_not_found", "Mentor profile not found")
		}

		status := types.MentorStatusRejected
		var approvedAt *time.Time
		if approve {
			status = types.MentorStatusApproved
			now := s.now()
			approvedAt = &now
		}
		if err := s.mentors.UpdateStatus(txc, profile.ID, status, approvedAt); err != nil {
			return db.MapError("review_mentor", err)
		}
		if approve && profile.User != nil && profile.User.Role == types.RoleStudent {
			if err := s.users.UpdateRole(txc, profile.UserID, types.RoleMentor); err != nil {
				return db.MapError("promote_mentor", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("mentor reviewed", "mentor_id", profileID, "approved", approve)
	return s.view(dbc, profileID)
}

func (s *mentorService) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*MentorView, error) {
	profile, err := s.mentors.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load mentor profile: %w", err)
	}
	if profile == nil {
		return nil, apierr.NotFound("mentor_not_found", "Mentor profile not found")
	}
	return formatMentor(profile), nil
}

func (s *mentorService) view(dbc dbctx.Context, profileID uuid.UUID) (*MentorView, error) {
	profile, err := s.mentors.GetByID(dbc, profileID)
	if err != nil {
		return nil, fmt.Errorf("load mentor profile: %w", err)
	}
	if profile == nil {
		return nil, apierr.NotFound("mentor_not_found", "Mentor profile not found")
	}
	return formatMentor(profile), nil
}
