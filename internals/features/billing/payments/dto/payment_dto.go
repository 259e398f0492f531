package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/billing/payments/model"
)

type ManualPaymentCreateDTO struct {
	ProgramProfileID uuid.UUID  `json:"program_profile_id" validate:"required"`
	AmountCents      int        `json:"amount_cents" validate:"required,gt=0"`
	Method           string     `json:"method" validate:"required,oneof=cash transfer"`
	PaidAt           *time.Time `json:"paid_at"`
	Note             *string    `json:"note" validate:"omitempty,max=500"`
}

type CheckoutRequestDTO struct {
	SubscriptionID uuid.UUID `json:"subscription_id" validate:"required"`
}

type CheckoutResponseDTO struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	OrderRef       string    `json:"order_ref"`
	SnapToken      string    `json:"snap_token"`
	RedirectURL    string    `json:"redirect_url"`
}

type StudentPaymentResponse struct {
	StudentPaymentID uuid.UUID  `json:"student_payment_id"`
	SchoolID         uuid.UUID  `json:"school_id"`
	ProgramProfileID uuid.UUID  `json:"program_profile_id"`
	SubscriptionID   *uuid.UUID `json:"subscription_id,omitempty"`
	AssignmentID     *uuid.UUID `json:"assignment_id,omitempty"`
	AmountCents      int        `json:"amount_cents"`
	Method           string     `json:"method"`
	Status           string     `json:"status"`
	OrderRef         *string    `json:"order_ref,omitempty"`
	GatewayTxnID     *string    `json:"gateway_txn_id,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToStudentPaymentResponse(m *model.StudentPaymentModel) StudentPaymentResponse {
	return StudentPaymentResponse{
		StudentPaymentID: m.StudentPaymentID,
		SchoolID:         m.StudentPaymentSchoolID,
		ProgramProfileID: m.StudentPaymentProgramProfileID,
		SubscriptionID:   m.StudentPaymentSubscriptionID,
		AssignmentID:     m.StudentPaymentAssignmentID,
		AmountCents:      m.StudentPaymentAmountCents,
		Method:           m.StudentPaymentMethod,
		Status:           m.StudentPaymentStatus,
		OrderRef:         m.StudentPaymentOrderRef,
		GatewayTxnID:     m.StudentPaymentGatewayTxnID,
		PaidAt:           m.StudentPaymentPaidAt,
		Note:             m.StudentPaymentNote,
		CreatedAt:        m.StudentPaymentCreatedAt,
	}
}

type GatewayEventResponse struct {
	GatewayEventID   uuid.UUID  `json:"gateway_event_id"`
	SchoolID         *uuid.UUID `json:"school_id,omitempty"`
	Provider         string     `json:"provider"`
	Type             *string    `json:"type,omitempty"`
	ExternalID       *string    `json:"external_id,omitempty"`
	OrderRef         *string    `json:"order_ref,omitempty"`
	Status           string     `json:"status"`
	Error            *string    `json:"error,omitempty"`
	BillingAccountID *uuid.UUID `json:"billing_account_id,omitempty"`
	MatchedBy        *string    `json:"matched_by,omitempty"`
	ReceivedAt       time.Time  `json:"received_at"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
}

func ToGatewayEventResponse(m *model.GatewayEventModel) GatewayEventResponse {
	return GatewayEventResponse{
		GatewayEventID:   m.GatewayEventID,
		SchoolID:         m.GatewayEventSchoolID,
		Provider:         m.GatewayEventProvider,
		Type:             m.GatewayEventType,
		ExternalID:       m.GatewayEventExternalID,
		OrderRef:         m.GatewayEventOrderRef,
		Status:           m.GatewayEventStatus,
		Error:            m.GatewayEventError,
		BillingAccountID: m.GatewayEventBillingAccountID,
		MatchedBy:        m.GatewayEventMatchedBy,
		ReceivedAt:       m.GatewayEventReceivedAt,
		ProcessedAt:      m.GatewayEventProcessedAt,
	}
}
