package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestCourseFieldMapCoversUpdateInput(t *testing.T) {
	fields, err := loadCourseFields(courseFieldsYAML)
	if err != nil {
		t.Fatalf("loadCourseFields: %v", err)
	}
	for name := range updateInputNames() {
		if _, ok := fields[name]; !ok {
			t.Fatalf("input %q has no mapping", name)
		}
	}
}

func TestLoadCourseFieldsRejectsGaps(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"unmapped input", "fields:\n  - input: title\n    column: title\n    kind: value\n", "is not mapped"},
		{"unknown kind", "fields:\n  - input: title\n    column: title\n    kind: blob\n", "unknown kind"},
		{"duplicate", "fields:\n  - input: title\n    column: title\n    kind: value\n  - input: title\n    column: title\n    kind: value\n", "duplicate"},
		{"reference without table", "fields:\n  - input: categoryId\n    column: category_id\n    kind: reference\n", "needs column and references"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadCourseFields([]byte(tc.raw))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("loadCourseFields: want error containing %q got %v", tc.want, err)
			}
		})
	}
}

func TestPlanCourseUpdateTranslatesNames(t *testing.T) {
	short := "s"
	isFree := true
	catID := uuid.New()
	reqs := []string{" go ", ""}
	tags := []string{"a"}
	title := "New"

	plan, err := planCourseUpdate(UpdateCourseInput{
		Title:            &title,
		ShortDescription: &short,
		IsFree:           &isFree,
		CategoryID:       &catID,
		Requirements:     &reqs,
		Tags:             &tags,
	})
	if err != nil {
		t.Fatalf("planCourseUpdate: %v", err)
	}
	if plan.Columns["short_description"] != "s" || plan.Columns["is_free"] != true || plan.Columns["title"] != "New" {
		t.Fatalf("columns: unexpected %v", plan.Columns)
	}
	if plan.Columns["category_id"] != catID {
		t.Fatalf("category_id: want=%s got=%v", catID, plan.Columns["category_id"])
	}
	got, ok := plan.Columns["requirements"].(datatypes.JSONSlice[string])
	if !ok || len(got) != 1 || got[0] != "go" {
		t.Fatalf("requirements: unexpected %#v", plan.Columns["requirements"])
	}
	if plan.Tags == nil || len(*plan.Tags) != 1 {
		t.Fatalf("tags: expected tag replacement")
	}
	if _, ok := plan.Columns["tags"]; ok {
		t.Fatalf("tags must not be written as a column")
	}
	if plan.SlugSource == nil || *plan.SlugSource != "New" {
		t.Fatalf("slug source: expected title")
	}
	if len(plan.References) != 1 || plan.References[0].Table != "category" {
		t.Fatalf("references: unexpected %+v", plan.References)
	}

	empty, err := planCourseUpdate(UpdateCourseInput{})
	if err != nil {
		t.Fatalf("planCourseUpdate(empty): %v", err)
	}
	if !empty.empty() {
		t.Fatalf("planCourseUpdate(empty): expected empty plan")
	}
}
