package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var SnapClient snap.Client

// InitMidtrans must run at bootstrap, before any checkout.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CheckoutCustomer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type CheckoutInput struct {
	OrderRef    string
	AmountCents int
	Description string
	Customer    CheckoutCustomer
}

// GenerateSnapToken creates a gateway checkout session for a subscription
// charge and returns the snap token plus redirect URL.
func GenerateSnapToken(in CheckoutInput) (string, string, error) {
	if in.AmountCents <= 0 {
		return "", "", errors.New("invalid amount_cents")
	}
	if in.OrderRef == "" {
		return "", "", errors.New("order_ref is required (used as OrderID)")
	}

	itemName := in.Description
	if itemName == "" {
		itemName = "Dugsi tuition"
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderRef,
			GrossAmt: int64(in.AmountCents),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.Customer.FirstName,
			LName: in.Customer.LastName,
			Email: in.Customer.Email,
			Phone: in.Customer.Phone,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       in.OrderRef,
				Price:    int64(in.AmountCents),
				Qty:      1,
				Name:     truncate(itemName, 50),
				Category: "tuition",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
