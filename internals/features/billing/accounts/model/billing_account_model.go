package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingAccountModel anchors billing for a family. The payer is a guardian
// person; gateway customer ref and payer email are what the webhook matcher
// falls back to when a callback carries no usable order id.
type BillingAccountModel struct {
	BillingAccountID       uuid.UUID `gorm:"column:billing_account_id;type:uuid;default:gen_random_uuid();primaryKey" json:"billing_account_id"`
	BillingAccountSchoolID uuid.UUID `gorm:"column:billing_account_school_id;type:uuid;not null;index:ix_billing_account_school" json:"billing_account_school_id"`

	BillingAccountPayerPersonID uuid.UUID `gorm:"column:billing_account_payer_person_id;type:uuid;not null;index" json:"billing_account_payer_person_id"`

	BillingAccountPayerEmail  *string `gorm:"column:billing_account_payer_email;type:varchar(255);index:ix_billing_account_payer_email" json:"billing_account_payer_email,omitempty"`
	BillingAccountGatewayRef  *string `gorm:"column:billing_account_gateway_ref;type:varchar(100)" json:"billing_account_gateway_ref,omitempty"`
	BillingAccountNotes       *string `gorm:"column:billing_account_notes" json:"billing_account_notes,omitempty"`

	BillingAccountIsActive bool `gorm:"column:billing_account_is_active;not null;default:true" json:"billing_account_is_active"`

	BillingAccountCreatedAt time.Time      `gorm:"column:billing_account_created_at;not null;default:now();autoCreateTime" json:"billing_account_created_at"`
	BillingAccountUpdatedAt time.Time      `gorm:"column:billing_account_updated_at;not null;default:now();autoUpdateTime" json:"billing_account_updated_at"`
	BillingAccountDeletedAt gorm.DeletedAt `gorm:"column:billing_account_deleted_at;index" json:"-"`
}

func (BillingAccountModel) TableName() string { return "billing_accounts" }
