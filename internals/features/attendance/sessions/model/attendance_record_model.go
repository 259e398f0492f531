package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendanceRecordPresent = "present"
	AttendanceRecordAbsent  = "absent"
	AttendanceRecordLate    = "late"
	AttendanceRecordExcused = "excused"
)

// AttendanceRecordModel is one student's mark within a session. One row per
// (session, student); re-marking updates the row in place.
type AttendanceRecordModel struct {
	AttendanceRecordID       uuid.UUID `gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_record_id"`
	AttendanceRecordSchoolID uuid.UUID `gorm:"column:attendance_record_school_id;type:uuid;not null;index" json:"attendance_record_school_id"`

	AttendanceRecordSessionID uuid.UUID `gorm:"column:attendance_record_session_id;type:uuid;not null;uniqueIndex:uniq_record_session_student,priority:1" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"column:attendance_record_student_id;type:uuid;not null;index;uniqueIndex:uniq_record_session_student,priority:2" json:"attendance_record_student_id"`

	AttendanceRecordStatus string  `gorm:"column:attendance_record_status;type:varchar(10);not null" json:"attendance_record_status"`
	AttendanceRecordNote   *string `gorm:"column:attendance_record_note;type:text" json:"attendance_record_note,omitempty"`

	AttendanceRecordMarkedBy *uuid.UUID `gorm:"column:attendance_record_marked_by;type:uuid" json:"attendance_record_marked_by,omitempty"`

	AttendanceRecordCreatedAt time.Time      `gorm:"column:attendance_record_created_at;not null;default:now();autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `gorm:"column:attendance_record_updated_at;not null;default:now();autoUpdateTime" json:"attendance_record_updated_at"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index" json:"-"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// ValidRecordStatus reports whether s is one of the four mark values.
func ValidRecordStatus(s string) bool {
	switch s {
	case AttendanceRecordPresent, AttendanceRecordAbsent, AttendanceRecordLate, AttendanceRecordExcused:
		return true
	}
	return false
}
