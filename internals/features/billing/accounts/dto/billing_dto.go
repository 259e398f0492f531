package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/billing/accounts/model"
)

type BillingAccountCreateDTO struct {
	PayerPersonID uuid.UUID `json:"payer_person_id" validate:"required"`
	PayerEmail    *string   `json:"payer_email" validate:"omitempty,email"`
	Notes         *string   `json:"notes" validate:"omitempty,max=500"`
}

type BillingAccountResponse struct {
	BillingAccountID uuid.UUID `json:"billing_account_id"`
	SchoolID         uuid.UUID `json:"school_id"`
	PayerPersonID    uuid.UUID `json:"payer_person_id"`
	PayerEmail       *string   `json:"payer_email,omitempty"`
	GatewayRef       *string   `json:"gateway_ref,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToBillingAccountResponse(m *model.BillingAccountModel) BillingAccountResponse {
	return BillingAccountResponse{
		BillingAccountID: m.BillingAccountID,
		SchoolID:         m.BillingAccountSchoolID,
		PayerPersonID:    m.BillingAccountPayerPersonID,
		PayerEmail:       m.BillingAccountPayerEmail,
		GatewayRef:       m.BillingAccountGatewayRef,
		Notes:            m.BillingAccountNotes,
		IsActive:         m.BillingAccountIsActive,
		CreatedAt:        m.BillingAccountCreatedAt,
	}
}

type SubscriptionCreateDTO struct {
	BillingAccountID  uuid.UUID   `json:"billing_account_id" validate:"required"`
	AmountCents       int         `json:"amount_cents" validate:"required,gt=0"`
	Interval          string      `json:"interval" validate:"omitempty,oneof=monthly yearly"`
	ProgramProfileIDs []uuid.UUID `json:"program_profile_ids" validate:"required,min=1,dive,required"`
}

type SubscriptionResponse struct {
	SubscriptionID   uuid.UUID  `json:"subscription_id"`
	SchoolID         uuid.UUID  `json:"school_id"`
	BillingAccountID uuid.UUID  `json:"billing_account_id"`
	OrderRef         string     `json:"order_ref"`
	AmountCents      int        `json:"amount_cents"`
	Interval         string     `json:"interval"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"started_at"`
	CanceledAt       *time.Time `json:"canceled_at,omitempty"`
}

func ToSubscriptionResponse(m *model.SubscriptionModel) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:   m.SubscriptionID,
		SchoolID:         m.SubscriptionSchoolID,
		BillingAccountID: m.SubscriptionBillingAccountID,
		OrderRef:         m.SubscriptionOrderRef,
		AmountCents:      m.SubscriptionAmountCents,
		Interval:         m.SubscriptionInterval,
		Status:           m.SubscriptionStatus,
		StartedAt:        m.SubscriptionStartedAt,
		CanceledAt:       m.SubscriptionCanceledAt,
	}
}

type ResplitDTO struct {
	ProgramProfileIDs []uuid.UUID `json:"program_profile_ids" validate:"required,min=1,dive,required"`
}

type BillingAssignmentResponse struct {
	BillingAssignmentID uuid.UUID `json:"billing_assignment_id"`
	SubscriptionID      uuid.UUID `json:"subscription_id"`
	ProgramProfileID    uuid.UUID `json:"program_profile_id"`
	AmountCents         int       `json:"amount_cents"`
	Position            int       `json:"position"`
}

func ToBillingAssignmentResponse(m *model.BillingAssignmentModel) BillingAssignmentResponse {
	return BillingAssignmentResponse{
		BillingAssignmentID: m.BillingAssignmentID,
		SubscriptionID:      m.BillingAssignmentSubscriptionID,
		ProgramProfileID:    m.BillingAssignmentProgramProfileID,
		AmountCents:         m.BillingAssignmentAmountCents,
		Position:            m.BillingAssignmentPosition,
	}
}

// SubscriptionWithAssignments is the checkout/creation response: the new
// subscription plus its computed split.
type SubscriptionWithAssignments struct {
	Subscription SubscriptionResponse        `json:"subscription"`
	Assignments  []BillingAssignmentResponse `json:"assignments"`
}
