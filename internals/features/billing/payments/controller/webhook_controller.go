package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountmodel "dugsiku_backend/internals/features/billing/accounts/model"
	"dugsiku_backend/internals/features/billing/payments/model"
	"dugsiku_backend/internals/features/billing/payments/service"
)

type WebhookController struct {
	DB        *gorm.DB
	ServerKey string
}

// Permanent data conditions. The event is marked failed but the gateway gets
// a 200 so it stops redelivering; a retry can never make these succeed.
var (
	errNoLiveSubscription = errors.New("matched account has no live subscription")
	errNoAssignments      = errors.New("subscription has no billing assignments")
)

// POST /api/payments/notification
// Every callback is logged first, then matched and applied. Unmatched and
// duplicate events are 200-acked so the gateway stops redelivering; only
// transient errors (DB down) return 5xx to trigger a retry.
func (ctl *WebhookController) HandleNotification(c *fiber.Ctx) error {
	var notif service.Notification
	if err := c.BodyParser(&notif); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	// Signature: SHA512(order_id + status_code + gross_amount + server key).
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + ctl.ServerKey)
	if want == "" || got != want {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
	}

	if notif.TransactionID != "" && notif.TransactionStatus != "" {
		var dup int64
		if err := ctl.DB.Model(&model.GatewayEventModel{}).
			Where(`gateway_event_external_id = ?
			       AND gateway_event_type = ?
			       AND gateway_event_status IN ?`,
				notif.TransactionID, notif.TransactionStatus,
				[]string{model.GatewayEventStatusProcessed, model.GatewayEventStatusUnmatched}).
			Count(&dup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "event lookup failed")
		}
		if dup > 0 {
			if _, err := ctl.logEvent(c, &notif, model.GatewayEventStatusDuplicate, ""); err != nil {
				log.Printf("[WEBHOOK] failed to log duplicate event: %v", err)
			}
			return c.JSON(fiber.Map{"status": "ok", "reason": "duplicate"})
		}
	}

	ev, err := ctl.insertEvent(c, &notif)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to log event")
	}

	match, err := service.MatchBillingAccount(ctl.DB, &notif)
	if err != nil {
		if errors.Is(err, service.ErrUnmatched) {
			log.Printf("[WEBHOOK] unmatched callback order_id=%s txn=%s", notif.OrderID, notif.TransactionID)
			_ = ctl.finishEvent(ev, model.GatewayEventStatusUnmatched, "no billing account matched")
			return c.JSON(fiber.Map{"status": "ignored", "reason": "unmatched"})
		}
		_ = ctl.finishEvent(ev, model.GatewayEventStatusFailed, err.Error())
		return fiber.NewError(fiber.StatusInternalServerError, "matcher failed")
	}

	ev.GatewayEventSchoolID = &match.SchoolID
	ev.GatewayEventBillingAccountID = &match.AccountID
	matchedBy := match.MatchedBy
	ev.GatewayEventMatchedBy = &matchedBy

	status := service.MapTransactionStatus(notif.TransactionStatus, notif.FraudStatus)
	if status == "" {
		_ = ctl.finishEvent(ev, model.GatewayEventStatusProcessed,
			fmt.Sprintf("ignored transaction_status=%s", notif.TransactionStatus))
		return c.JSON(fiber.Map{"status": "ok", "reason": "status ignored"})
	}

	if err := ctl.apply(match, &notif, status); err != nil {
		_ = ctl.finishEvent(ev, model.GatewayEventStatusFailed, err.Error())
		if errors.Is(err, errNoLiveSubscription) || errors.Is(err, errNoAssignments) {
			log.Printf("[WEBHOOK] unapplicable callback order_id=%s: %v", notif.OrderID, err)
			return c.JSON(fiber.Map{"status": "ignored", "reason": err.Error()})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to apply event")
	}

	_ = ctl.finishEvent(ev, model.GatewayEventStatusProcessed, "")
	return c.JSON(fiber.Map{
		"status":             "ok",
		"matched_by":         match.MatchedBy,
		"billing_account_id": match.AccountID,
		"payment_status":     status,
	})
}

// apply writes the event's consequences in one transaction: a paid
// settlement fans out one StudentPayment per billing assignment with the
// split amounts; other statuses update the subscription only.
func (ctl *WebhookController) apply(match *service.MatchResult, notif *service.Notification, status string) error {
	return ctl.DB.Transaction(func(tx *gorm.DB) error {
		sub := match.Subscription
		if sub == nil {
			var live accountmodel.SubscriptionModel
			err := tx.
				Where(`subscription_billing_account_id = ?
				       AND subscription_status IN ?
				       AND subscription_deleted_at IS NULL`,
					match.AccountID,
					[]string{accountmodel.SubscriptionStatusActive, accountmodel.SubscriptionStatusPastDue}).
				First(&live).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNoLiveSubscription
			}
			if err != nil {
				return err
			}
			sub = &live
		}

		switch status {
		case model.StudentPaymentStatusPaid:
			if err := fanOutPayments(tx, sub, notif); err != nil {
				return err
			}
			if sub.SubscriptionStatus == accountmodel.SubscriptionStatusPastDue {
				sub.SubscriptionStatus = accountmodel.SubscriptionStatusActive
				return tx.Save(sub).Error
			}
		case model.StudentPaymentStatusExpired:
			if sub.SubscriptionStatus == accountmodel.SubscriptionStatusActive {
				sub.SubscriptionStatus = accountmodel.SubscriptionStatusPastDue
				return tx.Save(sub).Error
			}
		case model.StudentPaymentStatusCanceled:
			if sub.IsAlive() && notif.OrderID == sub.SubscriptionOrderRef {
				now := time.Now()
				sub.SubscriptionStatus = accountmodel.SubscriptionStatusCanceled
				sub.SubscriptionCanceledAt = &now
				return tx.Save(sub).Error
			}
		}
		return nil
	})
}

// fanOutPayments creates one paid StudentPayment per billing assignment.
// Skips when this transaction id already produced payments, which keeps the
// fan-out idempotent across gateway re-notifies.
func fanOutPayments(tx *gorm.DB, sub *accountmodel.SubscriptionModel, notif *service.Notification) error {
	if notif.TransactionID != "" {
		var existing int64
		if err := tx.Model(&model.StudentPaymentModel{}).
			Where("student_payment_gateway_txn_id = ?", notif.TransactionID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}
	}

	var assignments []accountmodel.BillingAssignmentModel
	if err := tx.
		Where("billing_assignment_subscription_id = ?", sub.SubscriptionID).
		Order("billing_assignment_position ASC").
		Find(&assignments).Error; err != nil {
		return err
	}
	if len(assignments) == 0 {
		return errNoAssignments
	}

	now := time.Now()
	rows := make([]model.StudentPaymentModel, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		rows = append(rows, model.StudentPaymentModel{
			StudentPaymentSchoolID:         sub.SubscriptionSchoolID,
			StudentPaymentProgramProfileID: a.BillingAssignmentProgramProfileID,
			StudentPaymentSubscriptionID:   &sub.SubscriptionID,
			StudentPaymentAssignmentID:     &a.BillingAssignmentID,
			StudentPaymentAmountCents:      a.BillingAssignmentAmountCents,
			StudentPaymentMethod:           model.StudentPaymentMethodGateway,
			StudentPaymentStatus:           model.StudentPaymentStatusPaid,
			StudentPaymentOrderRef:         strPtr(notif.OrderID),
			StudentPaymentGatewayTxnID:     strPtr(notif.TransactionID),
			StudentPaymentGatewayMethod:    strPtr(notif.PaymentType),
			StudentPaymentPaidAt:           &now,
		})
	}
	return tx.Create(&rows).Error
}

func (ctl *WebhookController) insertEvent(c *fiber.Ctx, notif *service.Notification) (*model.GatewayEventModel, error) {
	return ctl.logEvent(c, notif, model.GatewayEventStatusReceived, "")
}

func (ctl *WebhookController) logEvent(c *fiber.Ctx, notif *service.Notification, status, errMsg string) (*model.GatewayEventModel, error) {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		headers[k] = strings.Join(v, ",")
	}
	headersJSON, _ := sonic.Marshal(headers)
	payloadJSON, _ := sonic.Marshal(notif)

	ev := model.GatewayEventModel{
		GatewayEventProvider:   "midtrans",
		GatewayEventType:       strPtr(notif.TransactionStatus),
		GatewayEventExternalID: strPtr(notif.TransactionID),
		GatewayEventOrderRef:   strPtr(notif.OrderID),
		GatewayEventHeaders:    datatypes.JSON(headersJSON),
		GatewayEventPayload:    datatypes.JSON(payloadJSON),
		GatewayEventSignature:  strPtr(notif.SignatureKey),
		GatewayEventStatus:     status,
		GatewayEventReceivedAt: time.Now(),
	}
	if errMsg != "" {
		ev.GatewayEventError = &errMsg
	}
	if err := ctl.DB.Create(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (ctl *WebhookController) finishEvent(ev *model.GatewayEventModel, status, errMsg string) error {
	now := time.Now()
	ev.GatewayEventStatus = status
	ev.GatewayEventProcessedAt = &now
	if errMsg != "" {
		ev.GatewayEventError = &errMsg
	}
	return ctl.DB.Save(ev).Error
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
