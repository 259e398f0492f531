package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"dugsiku_backend/internals/features/enrollment/batches/model"
)

type BatchCreateDTO struct {
	BatchName            string     `json:"batch_name" validate:"required,min=2,max=100"`
	BatchProgramKind     string     `json:"batch_program_kind" validate:"omitempty,oneof=quran arabic islamic_studies"`
	BatchStartDate       time.Time  `json:"batch_start_date" validate:"required"`
	BatchEndDate         *time.Time `json:"batch_end_date,omitempty"`
	BatchWeekdays        []int64    `json:"batch_weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	BatchCapacity        int        `json:"batch_capacity" validate:"gte=0"`
	BatchMonthlyFeeCents int        `json:"batch_monthly_fee_cents" validate:"gte=0"`
	BatchTeacherID       *uuid.UUID `json:"batch_teacher_id,omitempty"`
}

type BatchUpdateDTO struct {
	BatchName            *string    `json:"batch_name,omitempty" validate:"omitempty,min=2,max=100"`
	BatchEndDate         *time.Time `json:"batch_end_date,omitempty"`
	BatchWeekdays        []int64    `json:"batch_weekdays,omitempty" validate:"omitempty,min=1,dive,gte=0,lte=6"`
	BatchCapacity        *int       `json:"batch_capacity,omitempty" validate:"omitempty,gte=0"`
	BatchMonthlyFeeCents *int       `json:"batch_monthly_fee_cents,omitempty" validate:"omitempty,gte=0"`
	BatchTeacherID       *uuid.UUID `json:"batch_teacher_id,omitempty"`
	BatchIsActive        *bool      `json:"batch_is_active,omitempty"`
}

type BatchResponse struct {
	BatchID              uuid.UUID  `json:"batch_id"`
	BatchSchoolID        uuid.UUID  `json:"batch_school_id"`
	BatchName            string     `json:"batch_name"`
	BatchProgramKind     string     `json:"batch_program_kind"`
	BatchStartDate       time.Time  `json:"batch_start_date"`
	BatchEndDate         *time.Time `json:"batch_end_date,omitempty"`
	BatchWeekdays        []int64    `json:"batch_weekdays"`
	BatchCapacity        int        `json:"batch_capacity"`
	BatchMonthlyFeeCents int        `json:"batch_monthly_fee_cents"`
	BatchTeacherID       *uuid.UUID `json:"batch_teacher_id,omitempty"`
	BatchIsActive        bool       `json:"batch_is_active"`
	BatchCreatedAt       time.Time  `json:"batch_created_at"`
}

func ToBatchResponse(m *model.BatchModel) BatchResponse {
	return BatchResponse{
		BatchID:              m.BatchID,
		BatchSchoolID:        m.BatchSchoolID,
		BatchName:            m.BatchName,
		BatchProgramKind:     m.BatchProgramKind,
		BatchStartDate:       m.BatchStartDate,
		BatchEndDate:         m.BatchEndDate,
		BatchWeekdays:        []int64(m.BatchWeekdays),
		BatchCapacity:        m.BatchCapacity,
		BatchMonthlyFeeCents: m.BatchMonthlyFeeCents,
		BatchTeacherID:       m.BatchTeacherID,
		BatchIsActive:        m.BatchIsActive,
		BatchCreatedAt:       m.BatchCreatedAt,
	}
}

func (d *BatchUpdateDTO) Apply(m *model.BatchModel) {
	if d.BatchName != nil {
		m.BatchName = *d.BatchName
	}
	if d.BatchEndDate != nil {
		m.BatchEndDate = d.BatchEndDate
	}
	if len(d.BatchWeekdays) > 0 {
		m.BatchWeekdays = pq.Int64Array(d.BatchWeekdays)
	}
	if d.BatchCapacity != nil {
		m.BatchCapacity = *d.BatchCapacity
	}
	if d.BatchMonthlyFeeCents != nil {
		m.BatchMonthlyFeeCents = *d.BatchMonthlyFeeCents
	}
	if d.BatchTeacherID != nil {
		m.BatchTeacherID = d.BatchTeacherID
	}
	if d.BatchIsActive != nil {
		m.BatchIsActive = *d.BatchIsActive
	}
}
