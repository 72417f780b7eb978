package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mentora-backend/internal/data/db"
	"github.com/yungbote/mentora-backend/internal/data/repos"
	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/apierr"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
)

type recordingBus struct {
	mu     sync.Mutex
	events []CourseEvent
	err    error
}

func (b *recordingBus) Publish(_ context.Context, evt CourseEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return b.err
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	ctx context.Context
	dbc dbctx.Context
	db  *gorm.DB
	bus *recordingBus

	courses    CourseService
	curriculum CurriculumService
	mentors    MentorService
	categories CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := db.NewGormTxRunner(gdb)
	bus := &recordingBus{}

	userRepo := repos.NewUserRepo(gdb, log)
	mentorRepo := repos.NewMentorProfileRepo(gdb, log)
	courseRepo := repos.NewCourseRepo(gdb, log)
	sectionRepo := repos.NewSectionRepo(gdb, log)
	materialRepo := repos.NewMaterialRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	enrollmentRepo := repos.NewEnrollmentRepo(gdb, log)
	transactionRepo := repos.NewTransactionRepo(gdb, log)

	courseSvc := NewCourseService(gdb, log, tx, courseRepo, sectionRepo, categoryRepo, mentorRepo, enrollmentRepo, transactionRepo, bus)

	ctx := context.Background()
	return &testEnv{
		ctx:        ctx,
		dbc:        dbctx.Context{Ctx: ctx},
		db:         gdb,
		bus:        bus,
		courses:    courseSvc,
		curriculum: NewCurriculumService(gdb, log, tx, courseSvc, sectionRepo, materialRepo),
		mentors:    NewMentorService(gdb, log, tx, userRepo, mentorRepo),
		categories: NewCategoryService(gdb, log, categoryRepo),
	}
}

// approvedMentor seeds a mentor-role user with an approved profile.
func (e *testEnv) approvedMentor(t *testing.T, email string) (*types.User, *types.MentorProfile) {
	t.Helper()
	u := testutil.SeedUser(t, e.ctx, e.db, email, types.RoleMentor)
	m := testutil.SeedMentor(t, e.ctx, e.db, u.ID, types.MentorStatusApproved)
	return u, m
}

func (e *testEnv) category(t *testing.T) *types.Category {
	t.Helper()
	return testutil.SeedCategory(t, e.ctx, e.db, "programming")
}

func wantStatus(t *testing.T, op string, err error, status int) *apierr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: want status=%d got nil error", op, status)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("%s: want *apierr.Error got %T (%v)", op, err, err)
	}
	if ae.Status != status {
		t.Fatalf("%s: want status=%d got=%d (%v)", op, status, ae.Status, err)
	}
	return ae
}

func validCreateInput(categoryID uuid.UUID, title string) CreateCourseInput {
	return CreateCourseInput{
		Title:            title,
		Description:      "Everything about " + title,
		CategoryID:       categoryID,
		WhatYouWillLearn: []string{"the basics"},
		Tags:             []string{"intro"},
		Price:            10,
	}
}
