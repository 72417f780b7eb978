package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/mentora-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureSearchIndexes adds the postgres-only indexes backing course search.
// Other dialects skip it.
func EnsureSearchIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_course_status_published_at ON course(status, published_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_course_lower_title ON course(LOWER(title));`,
		`CREATE INDEX IF NOT EXISTS idx_section_course_position ON section(course_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_material_section_position ON material(section_id, position);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure search indexes: %w", err)
		}
	}
	return nil
}
