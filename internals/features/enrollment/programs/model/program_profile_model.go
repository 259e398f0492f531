package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramProfileModel is the per-student record inside one batch: level,
// memorization progress and notes. One profile per (student, batch).
type ProgramProfileModel struct {
	ProgramProfileID       uuid.UUID `gorm:"column:program_profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"program_profile_id"`
	ProgramProfileSchoolID uuid.UUID `gorm:"column:program_profile_school_id;type:uuid;not null;index" json:"program_profile_school_id"`

	ProgramProfileBatchID   uuid.UUID `gorm:"column:program_profile_batch_id;type:uuid;not null;uniqueIndex:uniq_profile_batch_student,priority:1" json:"program_profile_batch_id"`
	ProgramProfileStudentID uuid.UUID `gorm:"column:program_profile_student_id;type:uuid;not null;index;uniqueIndex:uniq_profile_batch_student,priority:2" json:"program_profile_student_id"`

	ProgramProfileLevel      *string `gorm:"column:program_profile_level;type:varchar(40)" json:"program_profile_level,omitempty"`
	ProgramProfileCurrentJuz *int    `gorm:"column:program_profile_current_juz;check:program_profile_current_juz BETWEEN 1 AND 30" json:"program_profile_current_juz,omitempty"`
	ProgramProfileNote       *string `gorm:"column:program_profile_note;type:text" json:"program_profile_note,omitempty"`

	ProgramProfileCreatedAt time.Time      `gorm:"column:program_profile_created_at;not null;default:now();autoCreateTime" json:"program_profile_created_at"`
	ProgramProfileUpdatedAt time.Time      `gorm:"column:program_profile_updated_at;not null;default:now();autoUpdateTime" json:"program_profile_updated_at"`
	ProgramProfileDeletedAt gorm.DeletedAt `gorm:"column:program_profile_deleted_at;index" json:"-"`
}

func (ProgramProfileModel) TableName() string { return "program_profiles" }
