package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingAssignmentModel splits a subscription's amount across program
// profiles. Rows for one subscription always sum to the subscription amount;
// the split is recomputed as a whole whenever profiles are added or removed.
type BillingAssignmentModel struct {
	BillingAssignmentID       uuid.UUID `gorm:"column:billing_assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"billing_assignment_id"`
	BillingAssignmentSchoolID uuid.UUID `gorm:"column:billing_assignment_school_id;type:uuid;not null;index:ix_billing_assignment_school" json:"billing_assignment_school_id"`

	BillingAssignmentSubscriptionID   uuid.UUID `gorm:"column:billing_assignment_subscription_id;type:uuid;not null;uniqueIndex:uq_assignment_sub_profile,priority:1" json:"billing_assignment_subscription_id"`
	BillingAssignmentProgramProfileID uuid.UUID `gorm:"column:billing_assignment_program_profile_id;type:uuid;not null;uniqueIndex:uq_assignment_sub_profile,priority:2" json:"billing_assignment_program_profile_id"`

	BillingAssignmentAmountCents int `gorm:"column:billing_assignment_amount_cents;not null;check:billing_assignment_amount_cents >= 0" json:"billing_assignment_amount_cents"`

	// Position is the profile's slot in the split ordering; the last
	// position absorbs the division remainder.
	BillingAssignmentPosition int `gorm:"column:billing_assignment_position;not null;default:0" json:"billing_assignment_position"`

	BillingAssignmentCreatedAt time.Time      `gorm:"column:billing_assignment_created_at;not null;default:now();autoCreateTime" json:"billing_assignment_created_at"`
	BillingAssignmentUpdatedAt time.Time      `gorm:"column:billing_assignment_updated_at;not null;default:now();autoUpdateTime" json:"billing_assignment_updated_at"`
	BillingAssignmentDeletedAt gorm.DeletedAt `gorm:"column:billing_assignment_deleted_at;index" json:"-"`
}

func (BillingAssignmentModel) TableName() string { return "billing_assignments" }
