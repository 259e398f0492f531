package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusUnmatched = "unmatched"
	GatewayEventStatusFailed    = "failed"
	GatewayEventStatusDuplicate = "duplicate"
)

// GatewayEventModel logs every webhook callback before any processing: raw
// headers, raw payload, signature and the processing outcome. Kept for debug
// and replay; one transaction id can produce several rows (the gateway
// re-notifies on every status change).
type GatewayEventModel struct {
	GatewayEventID       uuid.UUID  `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`
	GatewayEventSchoolID *uuid.UUID `gorm:"column:gateway_event_school_id;type:uuid;index" json:"gateway_event_school_id,omitempty"`

	GatewayEventProvider string  `gorm:"column:gateway_event_provider;type:varchar(30);not null;default:'midtrans'" json:"gateway_event_provider"`
	GatewayEventType     *string `gorm:"column:gateway_event_type;type:varchar(40)" json:"gateway_event_type,omitempty"`

	// External identity: gateway transaction id and the order ref it carries.
	GatewayEventExternalID *string `gorm:"column:gateway_event_external_id;type:varchar(100);index:ix_gateway_event_external_id" json:"gateway_event_external_id,omitempty"`
	GatewayEventOrderRef   *string `gorm:"column:gateway_event_order_ref;type:varchar(100);index" json:"gateway_event_order_ref,omitempty"`

	GatewayEventHeaders   datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers"`
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature,omitempty"`

	GatewayEventStatus string  `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	// Matcher outcome, filled when a billing account was resolved.
	GatewayEventBillingAccountID *uuid.UUID `gorm:"column:gateway_event_billing_account_id;type:uuid" json:"gateway_event_billing_account_id,omitempty"`
	GatewayEventMatchedBy        *string    `gorm:"column:gateway_event_matched_by;type:varchar(30)" json:"gateway_event_matched_by,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`

	GatewayEventCreatedAt time.Time `gorm:"column:gateway_event_created_at;not null;default:now();autoCreateTime" json:"gateway_event_created_at"`
	GatewayEventUpdatedAt time.Time `gorm:"column:gateway_event_updated_at;not null;default:now();autoUpdateTime" json:"gateway_event_updated_at"`
}

func (GatewayEventModel) TableName() string { return "gateway_events" }
