package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/enrollment/programs/model"
)

type EnrollRequestDTO struct {
	BatchID    uuid.UUID `json:"batch_id" validate:"required"`
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	Level      *string   `json:"level,omitempty" validate:"omitempty,max=40"`
	CurrentJuz *int      `json:"current_juz,omitempty" validate:"omitempty,gte=1,lte=30"`
	Note       *string   `json:"note,omitempty"`
}

type ProgramProfileUpdateDTO struct {
	Level      *string `json:"level,omitempty" validate:"omitempty,max=40"`
	CurrentJuz *int    `json:"current_juz,omitempty" validate:"omitempty,gte=1,lte=30"`
	Note       *string `json:"note,omitempty"`
}

type EnrollmentTransitionDTO struct {
	Note *string `json:"note,omitempty"`
}

type ProgramProfileResponse struct {
	ProgramProfileID uuid.UUID `json:"program_profile_id"`
	SchoolID         uuid.UUID `json:"school_id"`
	BatchID          uuid.UUID `json:"batch_id"`
	StudentID        uuid.UUID `json:"student_id"`
	Level            *string   `json:"level,omitempty"`
	CurrentJuz       *int      `json:"current_juz,omitempty"`
	Note             *string   `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type EnrollmentResponse struct {
	EnrollmentID     uuid.UUID  `json:"enrollment_id"`
	SchoolID         uuid.UUID  `json:"school_id"`
	ProgramProfileID uuid.UUID  `json:"program_profile_id"`
	Status           string     `json:"status"`
	ActivatedAt      *time.Time `json:"activated_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	WithdrawnAt      *time.Time `json:"withdrawn_at,omitempty"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type EnrollResponseDTO struct {
	Profile    ProgramProfileResponse `json:"profile"`
	Enrollment EnrollmentResponse     `json:"enrollment"`
}

func ToProgramProfileResponse(m *model.ProgramProfileModel) ProgramProfileResponse {
	return ProgramProfileResponse{
		ProgramProfileID: m.ProgramProfileID,
		SchoolID:         m.ProgramProfileSchoolID,
		BatchID:          m.ProgramProfileBatchID,
		StudentID:        m.ProgramProfileStudentID,
		Level:            m.ProgramProfileLevel,
		CurrentJuz:       m.ProgramProfileCurrentJuz,
		Note:             m.ProgramProfileNote,
		CreatedAt:        m.ProgramProfileCreatedAt,
	}
}

func ToEnrollmentResponse(m *model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID:     m.EnrollmentID,
		SchoolID:         m.EnrollmentSchoolID,
		ProgramProfileID: m.EnrollmentProgramProfileID,
		Status:           string(m.EnrollmentStatus),
		ActivatedAt:      m.EnrollmentActivatedAt,
		CompletedAt:      m.EnrollmentCompletedAt,
		WithdrawnAt:      m.EnrollmentWithdrawnAt,
		Note:             m.EnrollmentNote,
		CreatedAt:        m.EnrollmentCreatedAt,
	}
}
