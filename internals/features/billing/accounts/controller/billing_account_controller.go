package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/billing/accounts/dto"
	"dugsiku_backend/internals/features/billing/accounts/model"
	"dugsiku_backend/internals/features/billing/accounts/service"
	programmodel "dugsiku_backend/internals/features/enrollment/programs/model"
	personmodel "dugsiku_backend/internals/features/people/persons/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type BillingAccountController struct {
	DB *gorm.DB
}

var (
	errActiveSubExists = errors.New("account already has a live subscription")
	errProfilesMissing = errors.New("one or more program profiles not found")
)

// POST /api/a/billing-accounts
func (ctl *BillingAccountController) CreateAccount(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BillingAccountCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var payer personmodel.PersonModel
	if err := ctl.DB.
		Where("person_id = ? AND person_school_id = ?", req.PayerPersonID, schoolID).
		First(&payer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payer person not found at this school")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if req.PayerEmail != nil {
		norm := helper.NormalizeEmail(*req.PayerEmail)
		if norm == "" {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid payer email")
		}
		req.PayerEmail = &norm
	}

	account := model.BillingAccountModel{
		BillingAccountSchoolID:      schoolID,
		BillingAccountPayerPersonID: req.PayerPersonID,
		BillingAccountPayerEmail:    req.PayerEmail,
		BillingAccountNotes:         req.Notes,
		BillingAccountIsActive:      true,
	}
	if err := ctl.DB.Create(&account).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create billing account")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Billing account created", dto.ToBillingAccountResponse(&account))
}

// GET /api/a/billing-accounts
func (ctl *BillingAccountController) ListAccounts(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.BillingAccountModel{}).
		Where("billing_account_school_id = ?", schoolID)
	if c.Query("active") == "true" {
		q = q.Where("billing_account_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count billing accounts")
	}

	var rows []model.BillingAccountModel
	if err := q.
		Order("billing_account_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list billing accounts")
	}

	out := make([]dto.BillingAccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToBillingAccountResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"accounts":   out,
		"pagination": helper.BuildPagination(paging, total),
	})
}

// POST /api/a/subscriptions
// Creates the subscription and its billing assignments in one transaction.
// The alive-check keeps one live subscription per account.
func (ctl *BillingAccountController) CreateSubscription(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubscriptionCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Interval == "" {
		req.Interval = model.SubscriptionIntervalMonthly
	}

	sub := model.SubscriptionModel{
		SubscriptionSchoolID:         schoolID,
		SubscriptionBillingAccountID: req.BillingAccountID,
		SubscriptionOrderRef:         newOrderRef(),
		SubscriptionAmountCents:      req.AmountCents,
		SubscriptionInterval:         req.Interval,
		SubscriptionStatus:           model.SubscriptionStatusActive,
		SubscriptionStartedAt:        time.Now(),
	}
	var assignments []model.BillingAssignmentModel

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var account model.BillingAccountModel
		if err := tx.
			Where("billing_account_id = ? AND billing_account_school_id = ? AND billing_account_is_active = TRUE",
				req.BillingAccountID, schoolID).
			First(&account).Error; err != nil {
			return err
		}

		var alive int64
		if err := tx.Model(&model.SubscriptionModel{}).
			Where(`subscription_billing_account_id = ?
			       AND subscription_status IN ?
			       AND subscription_deleted_at IS NULL`,
				req.BillingAccountID,
				[]string{model.SubscriptionStatusActive, model.SubscriptionStatusPastDue}).
			Count(&alive).Error; err != nil {
			return err
		}
		if alive > 0 {
			return errActiveSubExists
		}

		if err := verifyProfiles(tx, schoolID, req.ProgramProfileIDs); err != nil {
			return err
		}

		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		assignments, err = buildAssignments(schoolID, sub.SubscriptionID, sub.SubscriptionAmountCents, req.ProgramProfileIDs)
		if err != nil {
			return err
		}
		return tx.Create(&assignments).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Billing account not found or inactive")
		case errors.Is(txErr, errActiveSubExists):
			return helper.Error(c, fiber.StatusConflict, "This account already has a live subscription")
		case errors.Is(txErr, errProfilesMissing):
			return helper.Error(c, fiber.StatusNotFound, "One or more program profiles not found at this school")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create subscription")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Subscription created",
		subscriptionWithAssignments(&sub, assignments))
}

// POST /api/a/subscriptions/:id/cancel
func (ctl *BillingAccountController) CancelSubscription(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var sub model.SubscriptionModel
	if err := ctl.DB.
		Where("subscription_id = ? AND subscription_school_id = ?", c.Params("id"), schoolID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Subscription not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !sub.IsAlive() {
		return helper.Error(c, fiber.StatusConflict, "Subscription is already canceled")
	}

	now := time.Now()
	sub.SubscriptionStatus = model.SubscriptionStatusCanceled
	sub.SubscriptionCanceledAt = &now
	if err := ctl.DB.Save(&sub).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to cancel subscription")
	}
	return helper.Success(c, "Subscription canceled", dto.ToSubscriptionResponse(&sub))
}

// POST /api/a/subscriptions/:id/resplit
// Drops the old assignments and recomputes the split over the given profiles.
func (ctl *BillingAccountController) Resplit(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ResplitDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var sub model.SubscriptionModel
	var assignments []model.BillingAssignmentModel

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("subscription_id = ? AND subscription_school_id = ?", c.Params("id"), schoolID).
			First(&sub).Error; err != nil {
			return err
		}
		if !sub.IsAlive() {
			return errActiveSubExists
		}
		if err := verifyProfiles(tx, schoolID, req.ProgramProfileIDs); err != nil {
			return err
		}
		// Hard delete: soft-deleted rows would still occupy the
		// (subscription, profile) unique index and block re-added profiles.
		if err := tx.Unscoped().
			Where("billing_assignment_subscription_id = ?", sub.SubscriptionID).
			Delete(&model.BillingAssignmentModel{}).Error; err != nil {
			return err
		}
		var err error
		assignments, err = buildAssignments(schoolID, sub.SubscriptionID, sub.SubscriptionAmountCents, req.ProgramProfileIDs)
		if err != nil {
			return err
		}
		return tx.Create(&assignments).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Subscription not found")
		case errors.Is(txErr, errActiveSubExists):
			return helper.Error(c, fiber.StatusConflict, "Cannot re-split a canceled subscription")
		case errors.Is(txErr, errProfilesMissing):
			return helper.Error(c, fiber.StatusNotFound, "One or more program profiles not found at this school")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to re-split subscription")
		}
	}

	return helper.Success(c, "Subscription re-split", subscriptionWithAssignments(&sub, assignments))
}

// GET /api/a/subscriptions
func (ctl *BillingAccountController) ListSubscriptions(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	q := ctl.DB.Model(&model.SubscriptionModel{}).
		Where("subscription_school_id = ?", schoolID)
	if s := c.Query("status"); s != "" {
		q = q.Where("subscription_status = ?", s)
	}
	if acc := c.Query("billing_account_id"); acc != "" {
		q = q.Where("subscription_billing_account_id = ?", acc)
	}

	var rows []model.SubscriptionModel
	if err := q.Order("subscription_created_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list subscriptions")
	}

	out := make([]dto.SubscriptionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToSubscriptionResponse(&rows[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/a/subscriptions/:id/assignments
func (ctl *BillingAccountController) ListAssignments(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.BillingAssignmentModel
	if err := ctl.DB.
		Where("billing_assignment_subscription_id = ? AND billing_assignment_school_id = ?",
			c.Params("id"), schoolID).
		Order("billing_assignment_position ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}

	out := make([]dto.BillingAssignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToBillingAssignmentResponse(&rows[i]))
	}
	return helper.Success(c, "OK", out)
}

func verifyProfiles(tx *gorm.DB, schoolID uuid.UUID, ids []uuid.UUID) error {
	var n int64
	if err := tx.Model(&programmodel.ProgramProfileModel{}).
		Where("program_profile_id IN ? AND program_profile_school_id = ?", ids, schoolID).
		Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return errProfilesMissing
	}
	return nil
}

func buildAssignments(schoolID, subscriptionID uuid.UUID, amountCents int, profileIDs []uuid.UUID) ([]model.BillingAssignmentModel, error) {
	parts := service.SplitEvenCents(amountCents, len(profileIDs))
	if parts == nil {
		return nil, errProfilesMissing
	}
	rows := make([]model.BillingAssignmentModel, 0, len(profileIDs))
	for i, pid := range profileIDs {
		rows = append(rows, model.BillingAssignmentModel{
			BillingAssignmentSchoolID:         schoolID,
			BillingAssignmentSubscriptionID:   subscriptionID,
			BillingAssignmentProgramProfileID: pid,
			BillingAssignmentAmountCents:      parts[i],
			BillingAssignmentPosition:         i,
		})
	}
	return rows, nil
}

func subscriptionWithAssignments(sub *model.SubscriptionModel, rows []model.BillingAssignmentModel) dto.SubscriptionWithAssignments {
	out := dto.SubscriptionWithAssignments{
		Subscription: dto.ToSubscriptionResponse(sub),
		Assignments:  make([]dto.BillingAssignmentResponse, 0, len(rows)),
	}
	for i := range rows {
		out.Assignments = append(out.Assignments, dto.ToBillingAssignmentResponse(&rows[i]))
	}
	return out
}

func newOrderRef() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("DUGSI-%d-%s", time.Now().Unix(), id[:8])
}
