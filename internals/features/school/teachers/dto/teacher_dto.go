package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/school/teachers/model"
)

type TeacherCreateDTO struct {
	TeacherUserID      uuid.UUID `json:"teacher_user_id" validate:"required"`
	TeacherDisplayName string    `json:"teacher_display_name" validate:"required,min=2,max=100"`
	TeacherSpecialty   *string   `json:"teacher_specialty,omitempty" validate:"omitempty,max=100"`
	TeacherPhone       *string   `json:"teacher_phone,omitempty" validate:"omitempty,max=30"`
}

type TeacherUpdateDTO struct {
	TeacherDisplayName *string `json:"teacher_display_name,omitempty" validate:"omitempty,min=2,max=100"`
	TeacherSpecialty   *string `json:"teacher_specialty,omitempty" validate:"omitempty,max=100"`
	TeacherPhone       *string `json:"teacher_phone,omitempty" validate:"omitempty,max=30"`
	TeacherIsActive    *bool   `json:"teacher_is_active,omitempty"`
}

type TeacherResponse struct {
	TeacherID          uuid.UUID `json:"teacher_id"`
	TeacherSchoolID    uuid.UUID `json:"teacher_school_id"`
	TeacherUserID      uuid.UUID `json:"teacher_user_id"`
	TeacherDisplayName string    `json:"teacher_display_name"`
	TeacherSpecialty   *string   `json:"teacher_specialty,omitempty"`
	TeacherPhone       *string   `json:"teacher_phone,omitempty"`
	TeacherIsActive    bool      `json:"teacher_is_active"`
	TeacherCreatedAt   time.Time `json:"teacher_created_at"`
}

func ToTeacherResponse(m *model.TeacherModel) TeacherResponse {
	return TeacherResponse{
		TeacherID:          m.TeacherID,
		TeacherSchoolID:    m.TeacherSchoolID,
		TeacherUserID:      m.TeacherUserID,
		TeacherDisplayName: m.TeacherDisplayName,
		TeacherSpecialty:   m.TeacherSpecialty,
		TeacherPhone:       m.TeacherPhone,
		TeacherIsActive:    m.TeacherIsActive,
		TeacherCreatedAt:   m.TeacherCreatedAt,
	}
}

func (d *TeacherUpdateDTO) Apply(m *model.TeacherModel) {
	if d.TeacherDisplayName != nil {
		m.TeacherDisplayName = *d.TeacherDisplayName
	}
	if d.TeacherSpecialty != nil {
		m.TeacherSpecialty = d.TeacherSpecialty
	}
	if d.TeacherPhone != nil {
		m.TeacherPhone = d.TeacherPhone
	}
	if d.TeacherIsActive != nil {
		m.TeacherIsActive = *d.TeacherIsActive
	}
}
