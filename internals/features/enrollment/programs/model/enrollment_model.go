package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// validTransitions: pending may activate or withdraw; active may complete
// or withdraw; completed and withdrawn are terminal.
var validTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	EnrollmentPending: {EnrollmentActive, EnrollmentWithdrawn},
	EnrollmentActive:  {EnrollmentCompleted, EnrollmentWithdrawn},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to EnrollmentStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EnrollmentModel tracks one student's membership lifecycle in a batch.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`
	EnrollmentSchoolID uuid.UUID `gorm:"column:enrollment_school_id;type:uuid;not null;index" json:"enrollment_school_id"`

	EnrollmentProgramProfileID uuid.UUID `gorm:"column:enrollment_program_profile_id;type:uuid;not null;uniqueIndex" json:"enrollment_program_profile_id"`

	EnrollmentStatus EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:'pending';index" json:"enrollment_status"`

	EnrollmentActivatedAt *time.Time `gorm:"column:enrollment_activated_at" json:"enrollment_activated_at,omitempty"`
	EnrollmentCompletedAt *time.Time `gorm:"column:enrollment_completed_at" json:"enrollment_completed_at,omitempty"`
	EnrollmentWithdrawnAt *time.Time `gorm:"column:enrollment_withdrawn_at" json:"enrollment_withdrawn_at,omitempty"`
	EnrollmentNote        *string    `gorm:"column:enrollment_note;type:text" json:"enrollment_note,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;not null;default:now();autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;not null;default:now();autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

// ApplyTransition mutates status and the matching timestamp. Callers must
// have checked CanTransition first.
func (e *EnrollmentModel) ApplyTransition(to EnrollmentStatus, at time.Time) {
	e.EnrollmentStatus = to
	switch to {
	case EnrollmentActive:
		e.EnrollmentActivatedAt = &at
	case EnrollmentCompleted:
		e.EnrollmentCompletedAt = &at
	case EnrollmentWithdrawn:
		e.EnrollmentWithdrawnAt = &at
	}
}
