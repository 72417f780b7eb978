package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/mentora-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mentora-backend/internal/domain"
)

func TestCurriculumAuthoring(t *testing.T) {
	env := newTestEnv(t)
	cat := env.category(t)
	owner, m := env.approvedMentor(t, "owner@example.com")
	other, _ := env.approvedMentor(t, "other@example.com")
	c := testutil.SeedCourse(t, env.ctx, env.db, testutil.CourseSeed{MentorID: m.ID, CategoryID: cat.ID})

	_, err := env.curriculum.CreateSection(env.dbc, c.ID, other.ID, types.RoleMentor, CreateSectionInput{Title: "Nope"})
	wantStatus(t, "CreateSection(other mentor)", err, 403)

	_, err = env.curriculum.CreateSection(env.dbc, c.ID, owner.ID, types.RoleMentor, CreateSectionInput{})
	wantStatus(t, "CreateSection(no title)", err, 400)

	first, err := env.curriculum.CreateSection(env.dbc, c.ID, owner.ID, types.RoleMentor, CreateSectionInput{Title: "One"})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	second, err := env.curriculum.CreateSection(env.dbc, c.ID, owner.ID, types.RoleMentor, CreateSectionInput{Title: "Two"})
	if err != nil {
		t.Fatalf("CreateSection(second): %v", err)
	}
	if first.Order != 0 || second.Order != 1 {
		t.Fatalf("section order: want=0,1 got=%d,%d", first.Order, second.Order)
	}

	_, err = env.curriculum.CreateMaterial(env.dbc, uuid.New(), owner.ID, types.RoleMentor, CreateMaterialInput{Title: "x", Type: "VIDEO"})
	wantStatus(t, "CreateMaterial(missing section)", err, 404)

	_, err = env.curriculum.CreateMaterial(env.dbc, first.ID, owner.ID, types.RoleMentor, CreateMaterialInput{Title: "x", Type: "PODCAST"})
	wantStatus(t, "CreateMaterial(bad type)", err, 400)

	for i, d := range []int{10, 25} {
		mat, err := env.curriculum.CreateMaterial(env.dbc, first.ID, owner.ID, types.RoleMentor, CreateMaterialInput{
			Title: "Lesson", Type: "VIDEO", Duration: d,
		})
		if err != nil {
			t.Fatalf("CreateMaterial: %v", err)
		}
		if mat.Order != i {
			t.Fatalf("material order: want=%d got=%d", i, mat.Order)
		}
	}

	admin := testutil.SeedUser(t, env.ctx, env.db, "admin@example.com", types.RoleAdmin)
	if _, err := env.curriculum.CreateMaterial(env.dbc, second.ID, admin.ID, types.RoleAdmin, CreateMaterialInput{
		Title: "Quiz", Type: "QUIZ", Duration: 5,
	}); err != nil {
		t.Fatalf("CreateMaterial(admin): %v", err)
	}

	view, err := env.courses.GetCourseByID(env.dbc, c.ID, true)
	if err != nil {
		t.Fatalf("GetCourseByID: %v", err)
	}
	if len(view.Sections) != 2 || view.Sections[0].Duration != 35 || view.Sections[1].Duration != 5 {
		t.Fatalf("section durations: unexpected %+v", view.Sections)
	}
	if len(view.Sections[0].Materials) != 2 {
		t.Fatalf("materials: want=2 got=%d", len(view.Sections[0].Materials))
	}
}
