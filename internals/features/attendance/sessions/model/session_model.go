package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusOngoing   SessionStatus = "ongoing"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCanceled  SessionStatus = "canceled"
)

type AttendanceStatus string

const (
	AttendanceStatusOpen   AttendanceStatus = "open"
	AttendanceStatusClosed AttendanceStatus = "closed"
)

// DugsiAttendanceSessionModel is one teaching occurrence: a batch on a date.
// Counts are recomputed from the records when the session closes.
type DugsiAttendanceSessionModel struct {
	DugsiAttendanceSessionID       uuid.UUID `gorm:"column:dugsi_attendance_session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"dugsi_attendance_session_id"`
	DugsiAttendanceSessionSchoolID uuid.UUID `gorm:"column:dugsi_attendance_session_school_id;type:uuid;not null;index:ix_attendance_session_school" json:"dugsi_attendance_session_school_id"`

	DugsiAttendanceSessionBatchID   uuid.UUID  `gorm:"column:dugsi_attendance_session_batch_id;type:uuid;not null;uniqueIndex:uniq_session_batch_date,priority:1" json:"dugsi_attendance_session_batch_id"`
	DugsiAttendanceSessionDate      time.Time  `gorm:"column:dugsi_attendance_session_date;type:date;not null;uniqueIndex:uniq_session_batch_date,priority:2" json:"dugsi_attendance_session_date"`
	DugsiAttendanceSessionTeacherID *uuid.UUID `gorm:"column:dugsi_attendance_session_teacher_id;type:uuid;index" json:"dugsi_attendance_session_teacher_id,omitempty"`

	DugsiAttendanceSessionStatus           SessionStatus    `gorm:"column:dugsi_attendance_session_status;type:varchar(20);not null;default:'scheduled'" json:"dugsi_attendance_session_status"`
	DugsiAttendanceSessionAttendanceStatus AttendanceStatus `gorm:"column:dugsi_attendance_session_attendance_status;type:varchar(10);not null;default:'open'" json:"dugsi_attendance_session_attendance_status"`

	DugsiAttendanceSessionPresentCount int `gorm:"column:dugsi_attendance_session_present_count;not null;default:0" json:"dugsi_attendance_session_present_count"`
	DugsiAttendanceSessionAbsentCount  int `gorm:"column:dugsi_attendance_session_absent_count;not null;default:0" json:"dugsi_attendance_session_absent_count"`
	DugsiAttendanceSessionLateCount    int `gorm:"column:dugsi_attendance_session_late_count;not null;default:0" json:"dugsi_attendance_session_late_count"`
	DugsiAttendanceSessionExcusedCount int `gorm:"column:dugsi_attendance_session_excused_count;not null;default:0" json:"dugsi_attendance_session_excused_count"`

	DugsiAttendanceSessionNote     *string    `gorm:"column:dugsi_attendance_session_note;type:text" json:"dugsi_attendance_session_note,omitempty"`
	DugsiAttendanceSessionClosedAt *time.Time `gorm:"column:dugsi_attendance_session_closed_at" json:"dugsi_attendance_session_closed_at,omitempty"`

	DugsiAttendanceSessionCreatedAt time.Time      `gorm:"column:dugsi_attendance_session_created_at;not null;default:now();autoCreateTime" json:"dugsi_attendance_session_created_at"`
	DugsiAttendanceSessionUpdatedAt time.Time      `gorm:"column:dugsi_attendance_session_updated_at;not null;default:now();autoUpdateTime" json:"dugsi_attendance_session_updated_at"`
	DugsiAttendanceSessionDeletedAt gorm.DeletedAt `gorm:"column:dugsi_attendance_session_deleted_at;index" json:"-"`
}

func (DugsiAttendanceSessionModel) TableName() string { return "dugsi_attendance_sessions" }

func (s *DugsiAttendanceSessionModel) IsOpen() bool {
	return s.DugsiAttendanceSessionAttendanceStatus == AttendanceStatusOpen
}
