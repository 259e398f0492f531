package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accountmodel "dugsiku_backend/internals/features/billing/accounts/model"
	helper "dugsiku_backend/internals/helpers"
)

// Notification is the subset of a gateway callback the webhook cares about.
// Unknown fields in the raw payload are ignored; the full body is kept on the
// gateway event row.
type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
}

// How a callback was resolved to an account, in lookup order.
const (
	MatchedByOrderRef      = "order_ref"
	MatchedByGuardianEmail = "guardian_email"
	MatchedByGuardianPhone = "guardian_phone"
	MatchedByPayerEmail    = "payer_email"
)

// ErrUnmatched means no lookup in the chain resolved the callback.
var ErrUnmatched = errors.New("no billing account matches the callback")

type MatchResult struct {
	AccountID uuid.UUID
	SchoolID  uuid.UUID
	// Subscription is set when the order ref hit directly; otherwise the
	// caller resolves the account's live subscription itself.
	Subscription *accountmodel.SubscriptionModel
	MatchedBy    string
}

// MatchBillingAccount resolves a callback to a billing account by trying, in
// order: the order ref on a subscription, a guardian contact email, a
// guardian contact phone, the payer email stored on the account. First hit
// wins.
func MatchBillingAccount(db *gorm.DB, n *Notification) (*MatchResult, error) {
	if n.OrderID != "" {
		var sub accountmodel.SubscriptionModel
		err := db.
			Where("subscription_order_ref = ?", n.OrderID).
			First(&sub).Error
		if err == nil {
			return &MatchResult{
				AccountID:    sub.SubscriptionBillingAccountID,
				SchoolID:     sub.SubscriptionSchoolID,
				Subscription: &sub,
				MatchedBy:    MatchedByOrderRef,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if email := helper.NormalizeEmail(n.CustomerEmail); email != "" {
		if res, err := matchByContact(db, "email", email); err != nil || res != nil {
			return res, err
		}
	}

	if phone := helper.NormalizePhone(n.CustomerPhone); phone != "" {
		if res, err := matchByContact(db, "phone", phone); err != nil || res != nil {
			return res, err
		}
	}

	if email := helper.NormalizeEmail(n.CustomerEmail); email != "" {
		var acc accountmodel.BillingAccountModel
		err := db.
			Where("billing_account_payer_email = ? AND billing_account_is_active = TRUE", email).
			Order("billing_account_created_at DESC").
			First(&acc).Error
		if err == nil {
			return &MatchResult{
				AccountID: acc.BillingAccountID,
				SchoolID:  acc.BillingAccountSchoolID,
				MatchedBy: MatchedByPayerEmail,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrUnmatched
}

// matchByContact joins billing accounts to their payer's contact points.
// Returns (nil, nil) on no hit so the chain continues.
func matchByContact(db *gorm.DB, contactType, value string) (*MatchResult, error) {
	var acc accountmodel.BillingAccountModel
	err := db.
		Joins(`JOIN contact_points
		       ON contact_points.contact_point_person_id = billing_accounts.billing_account_payer_person_id
		       AND contact_points.contact_point_type = ?
		       AND contact_points.contact_point_value = ?
		       AND contact_points.contact_point_deleted_at IS NULL`, contactType, value).
		Where("billing_account_is_active = TRUE").
		Order("billing_account_created_at DESC").
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	matchedBy := MatchedByGuardianEmail
	if contactType == "phone" {
		matchedBy = MatchedByGuardianPhone
	}
	return &MatchResult{
		AccountID: acc.BillingAccountID,
		SchoolID:  acc.BillingAccountSchoolID,
		MatchedBy: matchedBy,
	}, nil
}

// MapTransactionStatus maps a gateway transaction status to the internal
// payment status. Card captures under fraud challenge stay pending until the
// gateway re-notifies with the final verdict.
func MapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		if strings.ToLower(fraudStatus) == "challenge" {
			return "pending"
		}
		return "paid"
	case "settlement":
		return "paid"
	case "pending":
		return "pending"
	case "deny", "cancel":
		return "canceled"
	case "expire":
		return "expired"
	}
	return ""
}
