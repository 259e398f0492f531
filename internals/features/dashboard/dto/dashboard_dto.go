package dto

import (
	"github.com/google/uuid"

	paymentdto "dugsiku_backend/internals/features/billing/payments/dto"
)

type BatchEnrollmentCount struct {
	BatchID   uuid.UUID `json:"batch_id"`
	BatchName string    `json:"batch_name"`
	Active    int       `json:"active"`
	Pending   int       `json:"pending"`
}

type MonthBilling struct {
	Month           string `json:"month"`
	PaidCents       int64  `json:"paid_cents"`
	PaidCount       int64  `json:"paid_count"`
	PendingCents    int64  `json:"pending_cents"`
	PendingCount    int64  `json:"pending_count"`
	ManualPaidCents int64  `json:"manual_paid_cents"`
}

type SummaryResponse struct {
	ActiveStudents    int64                             `json:"active_students"`
	ActiveBatches     int64                             `json:"active_batches"`
	LiveSubscriptions int64                             `json:"live_subscriptions"`
	Enrollments       []BatchEnrollmentCount            `json:"enrollments_per_batch"`
	Billing           MonthBilling                      `json:"billing_current_month"`
	RecentEvents      []paymentdto.GatewayEventResponse `json:"recent_gateway_events"`
}

type BatchAttendanceRate struct {
	BatchID        uuid.UUID `json:"batch_id"`
	BatchName      string    `json:"batch_name"`
	SessionsClosed int       `json:"sessions_closed"`
	Present        int       `json:"present"`
	Late           int       `json:"late"`
	Absent         int       `json:"absent"`
	Excused        int       `json:"excused"`
	Rate           float64   `json:"rate"`
}

type AttendanceRateResponse struct {
	WindowDays int                   `json:"window_days"`
	Batches    []BatchAttendanceRate `json:"batches"`
}
