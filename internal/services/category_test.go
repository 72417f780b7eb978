package services

import (
	"testing"

	types "github.com/yungbote/mentora-backend/internal/domain"
)

func TestCategoryService(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.categories.Create(env.dbc, types.RoleMentor, CreateCategoryInput{Name: "Data Science"})
	wantStatus(t, "Create(non-admin)", err, 403)

	_, err = env.categories.Create(env.dbc, types.RoleAdmin, CreateCategoryInput{})
	wantStatus(t, "Create(no name)", err, 400)

	created, err := env.categories.Create(env.dbc, types.RoleAdmin, CreateCategoryInput{Name: "Data Science"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "data-science" {
		t.Fatalf("Create: want slug=data-science got=%s", created.Slug)
	}

	_, err = env.categories.Create(env.dbc, types.RoleAdmin, CreateCategoryInput{Name: "data science!"})
	wantStatus(t, "Create(duplicate)", err, 409)

	if _, err := env.categories.Create(env.dbc, types.RoleAdmin, CreateCategoryInput{Name: "Art"}); err != nil {
		t.Fatalf("Create(second): %v", err)
	}

	list, err := env.categories.List(env.dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Art" {
		t.Fatalf("List: want [Art, Data Science] got %+v", list)
	}
}
