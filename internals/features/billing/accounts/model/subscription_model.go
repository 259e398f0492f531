package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

const (
	SubscriptionIntervalMonthly = "monthly"
	SubscriptionIntervalYearly  = "yearly"
)

// SubscriptionModel is a gateway-backed recurring charge. An account may hold
// at most one subscription in active or past_due status; the creating
// transaction runs an alive-check before insert.
type SubscriptionModel struct {
	SubscriptionID       uuid.UUID `gorm:"column:subscription_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subscription_id"`
	SubscriptionSchoolID uuid.UUID `gorm:"column:subscription_school_id;type:uuid;not null;index:ix_subscription_school" json:"subscription_school_id"`

	SubscriptionBillingAccountID uuid.UUID `gorm:"column:subscription_billing_account_id;type:uuid;not null;index" json:"subscription_billing_account_id"`

	// OrderRef is what we hand the gateway as OrderID and the first thing
	// the webhook matcher looks up.
	SubscriptionOrderRef string `gorm:"column:subscription_order_ref;type:varchar(100);not null;uniqueIndex:uq_subscription_order_ref" json:"subscription_order_ref"`

	SubscriptionAmountCents int    `gorm:"column:subscription_amount_cents;not null;check:subscription_amount_cents >= 0" json:"subscription_amount_cents"`
	SubscriptionInterval    string `gorm:"column:subscription_interval;type:varchar(20);not null;default:'monthly'" json:"subscription_interval"`
	SubscriptionStatus      string `gorm:"column:subscription_status;type:varchar(20);not null;default:'active'" json:"subscription_status"`

	SubscriptionStartedAt  time.Time  `gorm:"column:subscription_started_at;not null;default:now()" json:"subscription_started_at"`
	SubscriptionCanceledAt *time.Time `gorm:"column:subscription_canceled_at" json:"subscription_canceled_at,omitempty"`

	SubscriptionCreatedAt time.Time      `gorm:"column:subscription_created_at;not null;default:now();autoCreateTime" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time      `gorm:"column:subscription_updated_at;not null;default:now();autoUpdateTime" json:"subscription_updated_at"`
	SubscriptionDeletedAt gorm.DeletedAt `gorm:"column:subscription_deleted_at;index" json:"-"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// IsAlive reports whether the subscription still occupies its account's
// single active slot.
func (s *SubscriptionModel) IsAlive() bool {
	return s.SubscriptionStatus == SubscriptionStatusActive ||
		s.SubscriptionStatus == SubscriptionStatusPastDue
}
