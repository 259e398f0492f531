package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GuardianKindFather = "father"
	GuardianKindMother = "mother"
	GuardianKindUncle  = "uncle"
	GuardianKindAunt   = "aunt"
	GuardianKindOther  = "other"
)

// GuardianRelationshipModel links a guardian person to a dependent person.
// At most one alive active row may exist per (guardian, dependent) pair;
// the creating transaction checks before inserting and the DB carries a
// partial unique index on (guardian, dependent) WHERE is_active AND deleted IS NULL.
type GuardianRelationshipModel struct {
	GuardianRelationshipID       uuid.UUID `gorm:"column:guardian_relationship_id;type:uuid;default:gen_random_uuid();primaryKey" json:"guardian_relationship_id"`
	GuardianRelationshipSchoolID uuid.UUID `gorm:"column:guardian_relationship_school_id;type:uuid;not null;index" json:"guardian_relationship_school_id"`

	GuardianRelationshipGuardianID  uuid.UUID `gorm:"column:guardian_relationship_guardian_id;type:uuid;not null;index:ix_guardian_rel_guardian" json:"guardian_relationship_guardian_id"`
	GuardianRelationshipDependentID uuid.UUID `gorm:"column:guardian_relationship_dependent_id;type:uuid;not null;index:ix_guardian_rel_dependent" json:"guardian_relationship_dependent_id"`

	GuardianRelationshipKind     string `gorm:"column:guardian_relationship_kind;type:varchar(20);not null;default:'other'" json:"guardian_relationship_kind"`
	GuardianRelationshipIsActive bool   `gorm:"column:guardian_relationship_is_active;not null;default:true" json:"guardian_relationship_is_active"`

	GuardianRelationshipStartedAt time.Time  `gorm:"column:guardian_relationship_started_at;not null;default:now()" json:"guardian_relationship_started_at"`
	GuardianRelationshipEndedAt   *time.Time `gorm:"column:guardian_relationship_ended_at" json:"guardian_relationship_ended_at,omitempty"`

	GuardianRelationshipCreatedAt time.Time      `gorm:"column:guardian_relationship_created_at;not null;default:now();autoCreateTime" json:"guardian_relationship_created_at"`
	GuardianRelationshipUpdatedAt time.Time      `gorm:"column:guardian_relationship_updated_at;not null;default:now();autoUpdateTime" json:"guardian_relationship_updated_at"`
	GuardianRelationshipDeletedAt gorm.DeletedAt `gorm:"column:guardian_relationship_deleted_at;index" json:"-"`
}

func (GuardianRelationshipModel) TableName() string { return "guardian_relationships" }
