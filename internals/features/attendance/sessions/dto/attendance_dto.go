package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/attendance/sessions/model"
)

type SessionCreateDTO struct {
	BatchID   uuid.UUID  `json:"batch_id" validate:"required"`
	Date      time.Time  `json:"date" validate:"required"`
	TeacherID *uuid.UUID `json:"teacher_id"`
	Note      *string    `json:"note" validate:"omitempty,max=500"`
}

type SessionResponse struct {
	SessionID        uuid.UUID  `json:"session_id"`
	SchoolID         uuid.UUID  `json:"school_id"`
	BatchID          uuid.UUID  `json:"batch_id"`
	TeacherID        *uuid.UUID `json:"teacher_id,omitempty"`
	Date             time.Time  `json:"date"`
	Status           string     `json:"status"`
	AttendanceStatus string     `json:"attendance_status"`
	PresentCount     int        `json:"present_count"`
	AbsentCount      int        `json:"absent_count"`
	LateCount        int        `json:"late_count"`
	ExcusedCount     int        `json:"excused_count"`
	Note             *string    `json:"note,omitempty"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

func ToSessionResponse(m *model.DugsiAttendanceSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:        m.DugsiAttendanceSessionID,
		SchoolID:         m.DugsiAttendanceSessionSchoolID,
		BatchID:          m.DugsiAttendanceSessionBatchID,
		TeacherID:        m.DugsiAttendanceSessionTeacherID,
		Date:             m.DugsiAttendanceSessionDate,
		Status:           string(m.DugsiAttendanceSessionStatus),
		AttendanceStatus: string(m.DugsiAttendanceSessionAttendanceStatus),
		PresentCount:     m.DugsiAttendanceSessionPresentCount,
		AbsentCount:      m.DugsiAttendanceSessionAbsentCount,
		LateCount:        m.DugsiAttendanceSessionLateCount,
		ExcusedCount:     m.DugsiAttendanceSessionExcusedCount,
		Note:             m.DugsiAttendanceSessionNote,
		ClosedAt:         m.DugsiAttendanceSessionClosedAt,
	}
}

type MarkDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required"`
	Note      *string   `json:"note" validate:"omitempty,max=300"`
}

type BulkMarkDTO struct {
	Marks []MarkDTO `json:"marks" validate:"required,min=1,dive"`
}

type RecordResponse struct {
	RecordID  uuid.UUID  `json:"record_id"`
	SessionID uuid.UUID  `json:"session_id"`
	StudentID uuid.UUID  `json:"student_id"`
	Status    string     `json:"status"`
	Note      *string    `json:"note,omitempty"`
	MarkedBy  *uuid.UUID `json:"marked_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToRecordResponse(m *model.AttendanceRecordModel) RecordResponse {
	return RecordResponse{
		RecordID:  m.AttendanceRecordID,
		SessionID: m.AttendanceRecordSessionID,
		StudentID: m.AttendanceRecordStudentID,
		Status:    m.AttendanceRecordStatus,
		Note:      m.AttendanceRecordNote,
		MarkedBy:  m.AttendanceRecordMarkedBy,
		UpdatedAt: m.AttendanceRecordUpdatedAt,
	}
}

// SessionDetailResponse pairs a session with its marks.
type SessionDetailResponse struct {
	Session SessionResponse  `json:"session"`
	Records []RecordResponse `json:"records"`
}
