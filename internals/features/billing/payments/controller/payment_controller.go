package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountmodel "dugsiku_backend/internals/features/billing/accounts/model"
	"dugsiku_backend/internals/features/billing/payments/dto"
	"dugsiku_backend/internals/features/billing/payments/model"
	"dugsiku_backend/internals/features/billing/payments/service"
	programmodel "dugsiku_backend/internals/features/enrollment/programs/model"
	personmodel "dugsiku_backend/internals/features/people/persons/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB *gorm.DB
}

// POST /api/a/payments/checkout
// Hands the payer a gateway checkout session for their subscription; the
// webhook applies the result.
func (ctl *PaymentController) Checkout(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var sub accountmodel.SubscriptionModel
	if err := ctl.DB.
		Where("subscription_id = ? AND subscription_school_id = ?", req.SubscriptionID, schoolID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Subscription not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !sub.IsAlive() {
		return helper.Error(c, fiber.StatusConflict, "Subscription is canceled")
	}

	var account accountmodel.BillingAccountModel
	if err := ctl.DB.
		First(&account, "billing_account_id = ?", sub.SubscriptionBillingAccountID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load billing account")
	}

	cust := service.CheckoutCustomer{}
	var payer personmodel.PersonModel
	if err := ctl.DB.
		First(&payer, "person_id = ?", account.BillingAccountPayerPersonID).Error; err == nil {
		cust.FirstName = payer.PersonFirstName
		cust.LastName = payer.PersonLastName
	}
	if account.BillingAccountPayerEmail != nil {
		cust.Email = *account.BillingAccountPayerEmail
	}

	token, redirectURL, err := service.GenerateSnapToken(service.CheckoutInput{
		OrderRef:    sub.SubscriptionOrderRef,
		AmountCents: sub.SubscriptionAmountCents,
		Description: "Dugsi tuition " + sub.SubscriptionInterval,
		Customer:    cust,
	})
	if err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Payment gateway rejected the checkout")
	}

	// Trace ref only; a failure here must not void the checkout session.
	if err := storeGatewayRef(ctl.DB, &account, token); err != nil {
		log.Printf("[PAYMENT] failed to store gateway ref for account %s: %v",
			account.BillingAccountID, err)
	}

	return helper.Success(c, "Checkout created", dto.CheckoutResponseDTO{
		SubscriptionID: sub.SubscriptionID,
		OrderRef:       sub.SubscriptionOrderRef,
		SnapToken:      token,
		RedirectURL:    redirectURL,
	})
}

// storeGatewayRef keeps the latest checkout session token on the account so
// support can trace a payer back to the gateway.
func storeGatewayRef(db *gorm.DB, account *accountmodel.BillingAccountModel, token string) error {
	account.BillingAccountGatewayRef = &token
	return db.Model(account).
		Update("billing_account_gateway_ref", token).Error
}

// POST /api/a/payments
// Manual entry for cash or bank-transfer payments taken outside the gateway.
func (ctl *PaymentController) RecordManualPayment(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ManualPaymentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var profile programmodel.ProgramProfileModel
	if err := ctl.DB.
		Where("program_profile_id = ? AND program_profile_school_id = ?", req.ProgramProfileID, schoolID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Program profile not found at this school")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment := model.StudentPaymentModel{
		StudentPaymentSchoolID:         schoolID,
		StudentPaymentProgramProfileID: req.ProgramProfileID,
		StudentPaymentAmountCents:      req.AmountCents,
		StudentPaymentMethod:           req.Method,
		StudentPaymentStatus:           model.StudentPaymentStatusPaid,
		StudentPaymentPaidAt:           &paidAt,
		StudentPaymentNote:             req.Note,
	}
	if err := ctl.DB.Create(&payment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to record payment")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment recorded", dto.ToStudentPaymentResponse(&payment))
}

// GET /api/a/payments
func (ctl *PaymentController) ListPayments(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.StudentPaymentModel{}).
		Where("student_payment_school_id = ?", schoolID)
	if s := c.Query("status"); s != "" {
		q = q.Where("student_payment_status = ?", s)
	}
	if m := c.Query("method"); m != "" {
		q = q.Where("student_payment_method = ?", m)
	}
	if pid := c.Query("program_profile_id"); pid != "" {
		q = q.Where("student_payment_program_profile_id = ?", pid)
	}
	if sid := c.Query("subscription_id"); sid != "" {
		q = q.Where("student_payment_subscription_id = ?", sid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count payments")
	}

	var rows []model.StudentPaymentModel
	if err := q.
		Order("student_payment_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list payments")
	}

	out := make([]dto.StudentPaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToStudentPaymentResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"payments":   out,
		"pagination": helper.BuildPagination(paging, total),
	})
}

// GET /api/a/gateway-events
// Recent webhook traffic for the tenant, newest first.
func (ctl *PaymentController) ListGatewayEvents(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.GatewayEventModel{}).
		Where("gateway_event_school_id = ?", schoolID)
	if s := c.Query("status"); s != "" {
		q = q.Where("gateway_event_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var rows []model.GatewayEventModel
	if err := q.
		Order("gateway_event_received_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list events")
	}

	out := make([]dto.GatewayEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToGatewayEventResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"events":     out,
		"pagination": helper.BuildPagination(paging, total),
	})
}
