package services

import (
	_ "embed"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed course_fields.yaml
var courseFieldsYAML []byte

const (
	fieldKindValue     = "value"
	fieldKindList      = "list"
	fieldKindReference = "reference"
	fieldKindTags      = "tags"
)

type courseField struct {
	Input      string `yaml:"input"`
	Column     string `yaml:"column"`
	Kind       string `yaml:"kind"`
	References string `yaml:"references"`
	Slug       bool   `yaml:"slug"`
}

type courseFieldFile struct {
	Fields []courseField `yaml:"fields"`
}

var courseFields = mustLoadCourseFields(courseFieldsYAML)

func mustLoadCourseFields(raw []byte) map[string]courseField {
	out, err := loadCourseFields(raw)
	if err != nil {
		panic(err)
	}
	return out
}

// loadCourseFields parses the mapping and checks it covers UpdateCourseInput
// exactly, so a new input field cannot be dropped silently.
func loadCourseFields(raw []byte) (map[string]courseField, error) {
	var file courseFieldFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse course field map: %w", err)
	}
	out := make(map[string]courseField, len(file.Fields))
	for _, f := range file.Fields {
		if f.Input == "" {
			return nil, fmt.Errorf("course field map: entry without input")
		}
		if _, dup := out[f.Input]; dup {
			return nil, fmt.Errorf("course field map: duplicate input %q", f.Input)
		}
		switch f.Kind {
		case fieldKindValue, fieldKindList:
			if f.Column == "" {
				return nil, fmt.Errorf("course field map: %q has no column", f.Input)
			}
		case fieldKindReference:
			if f.Column == "" || f.References == "" {
				return nil, fmt.Errorf("course field map: reference %q needs column and references", f.Input)
			}
		case fieldKindTags:
		default:
			return nil, fmt.Errorf("course field map: %q has unknown kind %q", f.Input, f.Kind)
		}
		out[f.Input] = f
	}

	inputs := updateInputNames()
	for name := range inputs {
		if _, ok := out[name]; !ok {
			return nil, fmt.Errorf("course field map: input %q is not mapped", name)
		}
	}
	for name := range out {
		if !inputs[name] {
			return nil, fmt.Errorf("course field map: %q is not an UpdateCourseInput field", name)
		}
	}
	return out, nil
}

func updateInputNames() map[string]bool {
	t := reflect.TypeOf(UpdateCourseInput{})
	out := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" {
			out[name] = true
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

type fieldReference struct {
	Table string
	ID    uuid.UUID
}

// courseUpdatePlan is UpdateCourseInput translated into storage terms.
type courseUpdatePlan struct {
	Columns    map[string]interface{}
	Tags       *[]string
	SlugSource *string
	References []fieldReference
}

func (p courseUpdatePlan) empty() bool {
	return len(p.Columns) == 0 && p.Tags == nil
}

func planCourseUpdate(in UpdateCourseInput) (courseUpdatePlan, error) {
	plan := courseUpdatePlan{Columns: map[string]interface{}{}}
	v := reflect.ValueOf(in)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := v.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := jsonName(t.Field(i))
		mapping, ok := courseFields[name]
		if !ok {
			return plan, fmt.Errorf("unmapped update field %q", name)
		}
		val := fv.Elem().Interface()

		switch mapping.Kind {
		case fieldKindValue:
			plan.Columns[mapping.Column] = val
		case fieldKindList:
			list, ok := val.([]string)
			if !ok {
				return plan, fmt.Errorf("field %q is not a string list", name)
			}
			plan.Columns[mapping.Column] = datatypes.JSONSlice[string](trimList(list))
		case fieldKindReference:
			id, ok := val.(uuid.UUID)
			if !ok {
				return plan, fmt.Errorf("field %q is not an id", name)
			}
			plan.Columns[mapping.Column] = id
			plan.References = append(plan.References, fieldReference{Table: mapping.References, ID: id})
		case fieldKindTags:
			list, ok := val.([]string)
			if !ok {
				return plan, fmt.Errorf("field %q is not a string list", name)
			}
			plan.Tags = &list
		}

		if mapping.Slug {
			s, ok := val.(string)
			if !ok {
				return plan, fmt.Errorf("slug source %q is not a string", name)
			}
			plan.SlugSource = &s
		}
	}
	return plan, nil
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
