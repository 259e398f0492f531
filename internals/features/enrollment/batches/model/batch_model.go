package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	BatchProgramQuran          = "quran"
	BatchProgramArabic         = "arabic"
	BatchProgramIslamicStudies = "islamic_studies"
)

// BatchModel is a program cohort: one weekend class group for a term.
type BatchModel struct {
	BatchID       uuid.UUID `gorm:"column:batch_id;type:uuid;default:gen_random_uuid();primaryKey" json:"batch_id"`
	BatchSchoolID uuid.UUID `gorm:"column:batch_school_id;type:uuid;not null;index:ix_batch_school" json:"batch_school_id"`

	BatchName        string `gorm:"column:batch_name;type:varchar(100);not null" json:"batch_name"`
	BatchProgramKind string `gorm:"column:batch_program_kind;type:varchar(30);not null;default:'quran'" json:"batch_program_kind"`

	BatchStartDate time.Time  `gorm:"column:batch_start_date;type:date;not null" json:"batch_start_date"`
	BatchEndDate   *time.Time `gorm:"column:batch_end_date;type:date" json:"batch_end_date,omitempty"`

	// Weekdays the batch meets, 0=Sunday .. 6=Saturday
	BatchWeekdays pq.Int64Array `gorm:"column:batch_weekdays;type:int[];not null" json:"batch_weekdays"`

	BatchCapacity        int        `gorm:"column:batch_capacity;not null;default:0;check:batch_capacity >= 0" json:"batch_capacity"`
	BatchMonthlyFeeCents int        `gorm:"column:batch_monthly_fee_cents;not null;default:0;check:batch_monthly_fee_cents >= 0" json:"batch_monthly_fee_cents"`
	BatchTeacherID       *uuid.UUID `gorm:"column:batch_teacher_id;type:uuid;index" json:"batch_teacher_id,omitempty"`

	BatchIsActive bool `gorm:"column:batch_is_active;not null;default:true" json:"batch_is_active"`

	BatchCreatedAt time.Time      `gorm:"column:batch_created_at;not null;default:now();autoCreateTime" json:"batch_created_at"`
	BatchUpdatedAt time.Time      `gorm:"column:batch_updated_at;not null;default:now();autoUpdateTime" json:"batch_updated_at"`
	BatchDeletedAt gorm.DeletedAt `gorm:"column:batch_deleted_at;index" json:"-"`
}

func (BatchModel) TableName() string { return "batches" }

// MeetsOn reports whether the batch meets on the given weekday.
func (b *BatchModel) MeetsOn(day time.Weekday) bool {
	for _, d := range b.BatchWeekdays {
		if int(d) == int(day) {
			return true
		}
	}
	return false
}
