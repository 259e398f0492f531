package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/people/guardians/model"
	persondto "dugsiku_backend/internals/features/people/persons/dto"
)

type GuardianRelationshipCreateDTO struct {
	GuardianID  uuid.UUID `json:"guardian_id" validate:"required"`
	DependentID uuid.UUID `json:"dependent_id" validate:"required"`
	Kind        string    `json:"kind" validate:"omitempty,oneof=father mother uncle aunt other"`
}

type GuardianRelationshipResponse struct {
	GuardianRelationshipID uuid.UUID  `json:"guardian_relationship_id"`
	SchoolID               uuid.UUID  `json:"school_id"`
	GuardianID             uuid.UUID  `json:"guardian_id"`
	DependentID            uuid.UUID  `json:"dependent_id"`
	Kind                   string     `json:"kind"`
	IsActive               bool       `json:"is_active"`
	StartedAt              time.Time  `json:"started_at"`
	EndedAt                *time.Time `json:"ended_at,omitempty"`
}

func ToGuardianRelationshipResponse(m *model.GuardianRelationshipModel) GuardianRelationshipResponse {
	return GuardianRelationshipResponse{
		GuardianRelationshipID: m.GuardianRelationshipID,
		SchoolID:               m.GuardianRelationshipSchoolID,
		GuardianID:             m.GuardianRelationshipGuardianID,
		DependentID:            m.GuardianRelationshipDependentID,
		Kind:                   m.GuardianRelationshipKind,
		IsActive:               m.GuardianRelationshipIsActive,
		StartedAt:              m.GuardianRelationshipStartedAt,
		EndedAt:                m.GuardianRelationshipEndedAt,
	}
}

// FamilyResponse is the guardian-centric view: the guardian with contacts
// plus every active dependent.
type FamilyResponse struct {
	Guardian   persondto.PersonResponse `json:"guardian"`
	Dependents []FamilyDependent        `json:"dependents"`
}

type FamilyDependent struct {
	Relationship GuardianRelationshipResponse `json:"relationship"`
	Person       persondto.PersonResponse     `json:"person"`
}
