package models

import "time"

// SequenceValueModel is the persistence model for named sequence
// counters. LastValue only ever moves forward; it is bumped inside the
// transaction of the insert that consumes the value.
type SequenceValueModel struct {
	Name      string `gorm:"type:varchar(60);primary_key"`
	LastValue int64  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SequenceValueModel) TableName() string {
	return "sequence_values"
}
