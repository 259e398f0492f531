package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/configs"
	"dugsiku_backend/internals/constants"
	accountctl "dugsiku_backend/internals/features/billing/accounts/controller"
	paymentctl "dugsiku_backend/internals/features/billing/payments/controller"
	authmw "dugsiku_backend/internals/middlewares/auth"
)

// BillingWebhookRoutes registers the gateway callback endpoint. It sits
// outside the auth group; the handler verifies the gateway signature itself.
func BillingWebhookRoutes(app *fiber.App, db *gorm.DB) {
	webhook := &paymentctl.WebhookController{
		DB:        db,
		ServerKey: configs.MidtransServerKey,
	}
	app.Post("/api/payments/notification", webhook.HandleNotification)
}

func BillingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	accounts := &accountctl.BillingAccountController{DB: db}
	payments := &paymentctl.PaymentController{DB: db}

	read := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorTeacher("billing"), constants.StaffRoles...),
	)
	read.Get("/billing-accounts", accounts.ListAccounts)
	read.Get("/subscriptions", accounts.ListSubscriptions)
	read.Get("/subscriptions/:id/assignments", accounts.ListAssignments)
	read.Get("/payments", payments.ListPayments)
	read.Get("/gateway-events", payments.ListGatewayEvents)

	write := admin.Group("",
		authmw.OnlyRoles(constants.RoleErrorAdmin("billing"), constants.AdminRoles...),
	)
	write.Post("/billing-accounts", accounts.CreateAccount)
	write.Post("/subscriptions", accounts.CreateSubscription)
	write.Post("/subscriptions/:id/cancel", accounts.CancelSubscription)
	write.Post("/subscriptions/:id/resplit", accounts.Resplit)
	write.Post("/payments", payments.RecordManualPayment)
	write.Post("/payments/checkout", payments.Checkout)
}
