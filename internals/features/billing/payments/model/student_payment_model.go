package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StudentPaymentStatusPaid     = "paid"
	StudentPaymentStatusPending  = "pending"
	StudentPaymentStatusCanceled = "canceled"
	StudentPaymentStatusExpired  = "expired"
)

const (
	StudentPaymentMethodGateway  = "gateway"
	StudentPaymentMethodCash     = "cash"
	StudentPaymentMethodTransfer = "transfer"
)

// StudentPaymentModel is one collected payment applied to a program profile.
// Gateway settlements create one row per billing assignment; manual payments
// are entered by admins with method cash or transfer.
type StudentPaymentModel struct {
	StudentPaymentID       uuid.UUID `gorm:"column:student_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_payment_id"`
	StudentPaymentSchoolID uuid.UUID `gorm:"column:student_payment_school_id;type:uuid;not null;index:ix_student_payment_school" json:"student_payment_school_id"`

	StudentPaymentProgramProfileID uuid.UUID  `gorm:"column:student_payment_program_profile_id;type:uuid;not null;index" json:"student_payment_program_profile_id"`
	StudentPaymentSubscriptionID   *uuid.UUID `gorm:"column:student_payment_subscription_id;type:uuid;index" json:"student_payment_subscription_id,omitempty"`
	StudentPaymentAssignmentID     *uuid.UUID `gorm:"column:student_payment_assignment_id;type:uuid" json:"student_payment_assignment_id,omitempty"`

	StudentPaymentAmountCents int    `gorm:"column:student_payment_amount_cents;not null;check:student_payment_amount_cents >= 0" json:"student_payment_amount_cents"`
	StudentPaymentMethod      string `gorm:"column:student_payment_method;type:varchar(20);not null;default:'gateway'" json:"student_payment_method"`
	StudentPaymentStatus      string `gorm:"column:student_payment_status;type:varchar(20);not null;default:'pending'" json:"student_payment_status"`

	// Gateway refs for reconciliation back to the provider.
	StudentPaymentOrderRef      *string `gorm:"column:student_payment_order_ref;type:varchar(100);index:ix_student_payment_order_ref" json:"student_payment_order_ref,omitempty"`
	StudentPaymentGatewayTxnID  *string `gorm:"column:student_payment_gateway_txn_id;type:varchar(100)" json:"student_payment_gateway_txn_id,omitempty"`
	StudentPaymentGatewayMethod *string `gorm:"column:student_payment_gateway_method;type:varchar(40)" json:"student_payment_gateway_method,omitempty"`

	StudentPaymentPaidAt *time.Time `gorm:"column:student_payment_paid_at" json:"student_payment_paid_at,omitempty"`
	StudentPaymentNote   *string    `gorm:"column:student_payment_note" json:"student_payment_note,omitempty"`

	StudentPaymentCreatedAt time.Time      `gorm:"column:student_payment_created_at;not null;default:now();autoCreateTime" json:"student_payment_created_at"`
	StudentPaymentUpdatedAt time.Time      `gorm:"column:student_payment_updated_at;not null;default:now();autoUpdateTime" json:"student_payment_updated_at"`
	StudentPaymentDeletedAt gorm.DeletedAt `gorm:"column:student_payment_deleted_at;index" json:"-"`
}

func (StudentPaymentModel) TableName() string { return "student_payments" }
