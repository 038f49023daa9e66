package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

// nextSequenceValue bumps the named counter row and returns the new
// value. The bump is a single INSERT ... ON CONFLICT upsert riding in
// the same transaction as the insert that consumes the value, so a
// rollback releases the value together with the rows and concurrent
// callers serialize on the counter row.
func nextSequenceValue(tx *gorm.DB, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("sequence name is required")
	}

	var next int64
	err := tx.Raw(`
		INSERT INTO sequence_values (name, last_value, created_at, updated_at)
		VALUES (?, 1, NOW(), NOW())
		ON CONFLICT (name)
		DO UPDATE SET last_value = sequence_values.last_value + 1, updated_at = NOW()
		RETURNING last_value`, name).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", name, err)
	}
	return next, nil
}
