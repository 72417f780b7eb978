package courses

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mentora-backend/internal/domain"
	"github.com/yungbote/mentora-backend/internal/platform/dbctx"
)

func TestCourseRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "m@example.com", types.RoleMentor)
	m := testutil.SeedMentor(t, ctx, db, u.ID, "")
	cat := testutil.SeedCategory(t, ctx, db, "programming")
	other := testutil.SeedCategory(t, ctx, db, "design")

	base := time.Now().UTC().Add(-time.Hour)
	goCourse := testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{
		MentorID: m.ID, CategoryID: cat.ID, Title: "Learning Go", Status: types.CourseStatusPublished,
		Price: 100, Tags: []string{"golang", "backend"}, CreatedAt: base,
	})
	testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{
		MentorID: m.ID, CategoryID: other.ID, Title: "Figma Basics", Status: types.CourseStatusPublished,
		IsFree: true, CreatedAt: base.Add(time.Minute),
	})
	testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{
		MentorID: m.ID, CategoryID: cat.ID, Title: "Draft Rust", Status: types.CourseStatusDraft,
		Price: 50, CreatedAt: base.Add(2 * time.Minute),
	})

	published := []string{types.CourseStatusPublished}

	rows, total, err := repo.List(dbc, CourseQuery{Statuses: published, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("List(published): want=2 got total=%d rows=%d", total, len(rows))
	}
	if rows[0].Title != "Figma Basics" {
		t.Fatalf("List default sort: want newest first, got %s", rows[0].Title)
	}
	if rows[0].Category == nil || rows[0].Mentor == nil || rows[0].Mentor.User == nil {
		t.Fatalf("List: expected category and mentor preloads")
	}

	rows, total, err = repo.List(dbc, CourseQuery{Search: "GO", Statuses: published, Limit: 10})
	if err != nil {
		t.Fatalf("List(search): %v", err)
	}
	if total != 1 || rows[0].ID != goCourse.ID {
		t.Fatalf("List(search): want=%s got total=%d", goCourse.ID, total)
	}
	if got := rows[0].TagNames(); len(got) != 2 || got[0] != "golang" {
		t.Fatalf("List(search): unexpected tags %v", got)
	}

	rows, total, err = repo.List(dbc, CourseQuery{Search: "backend", Statuses: published, Limit: 10})
	if err != nil {
		t.Fatalf("List(tag): %v", err)
	}
	if total != 1 || rows[0].ID != goCourse.ID {
		t.Fatalf("List(tag): want exact tag match, got total=%d", total)
	}

	isFree := true
	_, total, err = repo.List(dbc, CourseQuery{IsFree: &isFree, Statuses: published, Limit: 10})
	if err != nil {
		t.Fatalf("List(isFree): %v", err)
	}
	if total != 1 {
		t.Fatalf("List(isFree): want=1 got=%d", total)
	}

	minPrice := 60.0
	_, total, err = repo.List(dbc, CourseQuery{MinPrice: &minPrice, Limit: 10})
	if err != nil {
		t.Fatalf("List(minPrice): %v", err)
	}
	if total != 1 {
		t.Fatalf("List(minPrice): want=1 got=%d", total)
	}

	catID := cat.ID
	rows, total, err = repo.List(dbc, CourseQuery{CategoryID: &catID, SortBy: "price", SortOrder: "asc", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List(category): %v", err)
	}
	if total != 2 || len(rows) != 1 || rows[0].Price != 100 {
		t.Fatalf("List(category page 2): unexpected total=%d rows=%d", total, len(rows))
	}
}

func TestCourseRepoDetailAndMutations(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "m@example.com", types.RoleMentor)
	m := testutil.SeedMentor(t, ctx, db, u.ID, "")
	cat := testutil.SeedCategory(t, ctx, db, "programming")
	c := testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{MentorID: m.ID, CategoryID: cat.ID, Slug: "go-101"})

	s2 := testutil.SeedSection(t, ctx, db, c.ID, 1, 0)
	s1 := testutil.SeedSection(t, ctx, db, c.ID, 0, 0)
	testutil.SeedMaterial(t, ctx, db, s1.ID, 1, 30)
	testutil.SeedMaterial(t, ctx, db, s1.ID, 0, 20)

	got, err := repo.GetDetailBySlug(dbc, "go-101")
	if err != nil {
		t.Fatalf("GetDetailBySlug: %v", err)
	}
	if got == nil || len(got.Sections) != 2 {
		t.Fatalf("GetDetailBySlug: expected 2 sections, got %+v", got)
	}
	if got.Sections[0].ID != s1.ID || got.Sections[1].ID != s2.ID {
		t.Fatalf("GetDetailBySlug: sections not ordered by position")
	}
	if mats := got.Sections[0].Materials; len(mats) != 2 || mats[0].Order != 0 {
		t.Fatalf("GetDetailBySlug: materials not ordered by position")
	}

	exists, err := repo.SlugExists(dbc, "go-101", uuid.Nil)
	if err != nil || !exists {
		t.Fatalf("SlugExists: want=true got=%v err=%v", exists, err)
	}
	exists, err = repo.SlugExists(dbc, "go-101", c.ID)
	if err != nil || exists {
		t.Fatalf("SlugExists(excluding self): want=false got=%v err=%v", exists, err)
	}

	if err := repo.IncrementViews(dbc, c.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	if err := repo.UpdateFields(dbc, c.ID, map[string]interface{}{"title": "Go 102"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.ReplaceTags(dbc, c.ID, []string{"go", " go ", "", "api"}); err != nil {
		t.Fatalf("ReplaceTags: %v", err)
	}
	got, err = repo.GetDetailByID(dbc, c.ID)
	if err != nil {
		t.Fatalf("GetDetailByID: %v", err)
	}
	if got.TotalViews != 1 || got.Title != "Go 102" {
		t.Fatalf("mutations: unexpected views=%d title=%s", got.TotalViews, got.Title)
	}
	if tags := got.TagNames(); len(tags) != 2 || tags[0] != "go" || tags[1] != "api" {
		t.Fatalf("ReplaceTags: unexpected tags %v", tags)
	}

	if err := repo.FullDeleteByIDs(dbc, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	got, err = repo.GetByID(dbc, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("FullDeleteByIDs: course still present")
	}
	var n int64
	db.Model(&types.Material{}).Count(&n)
	if n != 0 {
		t.Fatalf("FullDeleteByIDs: want=0 materials got=%d", n)
	}
}

func TestSectionRepoTotals(t *testing.T) {
	db := testutil.DB(t)
	sections := NewSectionRepo(db, testutil.Logger(t))
	materials := NewMaterialRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "m@example.com", types.RoleMentor)
	m := testutil.SeedMentor(t, ctx, db, u.ID, "")
	cat := testutil.SeedCategory(t, ctx, db, "programming")
	c := testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{MentorID: m.ID, CategoryID: cat.ID})

	next, err := sections.NextPosition(dbc, c.ID)
	if err != nil || next != 0 {
		t.Fatalf("NextPosition(empty): want=0 got=%d err=%v", next, err)
	}

	s1 := testutil.SeedSection(t, ctx, db, c.ID, 0, 30)
	s2 := testutil.SeedSection(t, ctx, db, c.ID, 1, 45)
	testutil.SeedMaterial(t, ctx, db, s1.ID, 0, 30)
	testutil.SeedMaterial(t, ctx, db, s2.ID, 0, 20)
	testutil.SeedMaterial(t, ctx, db, s2.ID, 1, 25)

	next, err = sections.NextPosition(dbc, c.ID)
	if err != nil || next != 2 {
		t.Fatalf("NextPosition: want=2 got=%d err=%v", next, err)
	}
	next, err = materials.NextPosition(dbc, s2.ID)
	if err != nil || next != 2 {
		t.Fatalf("material NextPosition: want=2 got=%d err=%v", next, err)
	}

	totals, err := sections.TotalsByCourseID(dbc, c.ID)
	if err != nil {
		t.Fatalf("TotalsByCourseID: %v", err)
	}
	if totals.Duration != 75 || totals.Lectures != 3 {
		t.Fatalf("TotalsByCourseID: want=75/3 got=%d/%d", totals.Duration, totals.Lectures)
	}

	if err := sections.AddDuration(dbc, s1.ID, 10); err != nil {
		t.Fatalf("AddDuration: %v", err)
	}
	got, err := sections.GetByID(dbc, s1.ID)
	if err != nil || got.Duration != 40 {
		t.Fatalf("AddDuration: want=40 got=%+v err=%v", got, err)
	}
}

func TestEnrollmentAndTransactionAggregates(t *testing.T) {
	db := testutil.DB(t)
	enrollments := NewEnrollmentRepo(db, testutil.Logger(t))
	transactions := NewTransactionRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "m@example.com", types.RoleMentor)
	m := testutil.SeedMentor(t, ctx, db, u.ID, "")
	cat := testutil.SeedCategory(t, ctx, db, "programming")
	c := testutil.SeedCourse(t, ctx, db, testutil.CourseSeed{MentorID: m.ID, CategoryID: cat.ID})

	sum, err := transactions.SumAmountByCourseIDAndStatus(dbc, c.ID, types.TransactionPaid)
	if err != nil || sum != 0 {
		t.Fatalf("Sum(empty): want=0 got=%v err=%v", sum, err)
	}

	s1 := testutil.SeedUser(t, ctx, db, "s1@example.com", "")
	s2 := testutil.SeedUser(t, ctx, db, "s2@example.com", "")
	testutil.SeedEnrollment(t, ctx, db, c.ID, s1.ID, types.EnrollmentActive)
	testutil.SeedEnrollment(t, ctx, db, c.ID, s2.ID, types.EnrollmentCompleted)
	testutil.SeedTransaction(t, ctx, db, c.ID, s1.ID, 100, types.TransactionPaid)
	testutil.SeedTransaction(t, ctx, db, c.ID, s2.ID, 50, types.TransactionPaid)
	testutil.SeedTransaction(t, ctx, db, c.ID, s2.ID, 75, "FAILED")

	n, err := enrollments.CountByCourseID(dbc, c.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountByCourseID: want=2 got=%d err=%v", n, err)
	}
	n, err = enrollments.CountByCourseIDAndStatus(dbc, c.ID, types.EnrollmentCompleted)
	if err != nil || n != 1 {
		t.Fatalf("CountByCourseIDAndStatus: want=1 got=%d err=%v", n, err)
	}
	byStatus, err := enrollments.CountByStatus(dbc, c.ID)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if byStatus[types.EnrollmentActive] != 1 || byStatus[types.EnrollmentCompleted] != 1 || len(byStatus) != 2 {
		t.Fatalf("CountByStatus: unexpected %v", byStatus)
	}
	sum, err = transactions.SumAmountByCourseIDAndStatus(dbc, c.ID, types.TransactionPaid)
	if err != nil || sum != 150 {
		t.Fatalf("Sum: want=150 got=%v err=%v", sum, err)
	}
	n, err = transactions.CountByCourseIDAndStatus(dbc, c.ID, types.TransactionPaid)
	if err != nil || n != 2 {
		t.Fatalf("CountByCourseIDAndStatus(paid): want=2 got=%d err=%v", n, err)
	}
}
