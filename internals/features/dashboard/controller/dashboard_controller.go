package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendancemodel "dugsiku_backend/internals/features/attendance/sessions/model"
	accountmodel "dugsiku_backend/internals/features/billing/accounts/model"
	paymentdto "dugsiku_backend/internals/features/billing/payments/dto"
	paymentmodel "dugsiku_backend/internals/features/billing/payments/model"
	"dugsiku_backend/internals/features/dashboard/dto"
	batchmodel "dugsiku_backend/internals/features/enrollment/batches/model"
	programmodel "dugsiku_backend/internals/features/enrollment/programs/model"
	helper "dugsiku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

// GET /api/a/dashboard/summary
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var resp dto.SummaryResponse

	if err := ctl.DB.Model(&programmodel.EnrollmentModel{}).
		Joins(`JOIN program_profiles
		       ON program_profiles.program_profile_id = enrollments.enrollment_program_profile_id`).
		Where("enrollment_school_id = ? AND enrollment_status = ?",
			schoolID, programmodel.EnrollmentActive).
		Distinct("program_profiles.program_profile_student_id").
		Count(&resp.ActiveStudents).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	if err := ctl.DB.Model(&batchmodel.BatchModel{}).
		Where("batch_school_id = ? AND batch_is_active = TRUE", schoolID).
		Count(&resp.ActiveBatches).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count batches")
	}

	if err := ctl.DB.Model(&accountmodel.SubscriptionModel{}).
		Where("subscription_school_id = ? AND subscription_status IN ?",
			schoolID, []string{accountmodel.SubscriptionStatusActive, accountmodel.SubscriptionStatusPastDue}).
		Count(&resp.LiveSubscriptions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count subscriptions")
	}

	if err := ctl.DB.Model(&batchmodel.BatchModel{}).
		Select(`batches.batch_id,
		        batches.batch_name,
		        COUNT(*) FILTER (WHERE enrollments.enrollment_status = 'active')  AS active,
		        COUNT(*) FILTER (WHERE enrollments.enrollment_status = 'pending') AS pending`).
		Joins(`LEFT JOIN program_profiles ON program_profiles.program_profile_batch_id = batches.batch_id
		       AND program_profiles.program_profile_deleted_at IS NULL`).
		Joins(`LEFT JOIN enrollments ON enrollments.enrollment_program_profile_id = program_profiles.program_profile_id
		       AND enrollments.enrollment_deleted_at IS NULL`).
		Where("batches.batch_school_id = ? AND batches.batch_is_active = TRUE", schoolID).
		Group("batches.batch_id, batches.batch_name").
		Order("batches.batch_name ASC").
		Scan(&resp.Enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate enrollments")
	}

	monthStart := beginningOfMonth(time.Now())
	resp.Billing.Month = monthStart.Format("2006-01")

	type sumRow struct {
		Cents int64
		N     int64
	}
	var paid, pending, manual sumRow
	base := func() *gorm.DB {
		return ctl.DB.Model(&paymentmodel.StudentPaymentModel{}).
			Select("COALESCE(SUM(student_payment_amount_cents),0) AS cents, COUNT(*) AS n").
			Where("student_payment_school_id = ? AND student_payment_created_at >= ?", schoolID, monthStart)
	}
	if err := base().Where("student_payment_status = ?", paymentmodel.StudentPaymentStatusPaid).
		Scan(&paid).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate payments")
	}
	if err := base().Where("student_payment_status = ?", paymentmodel.StudentPaymentStatusPending).
		Scan(&pending).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate payments")
	}
	if err := base().Where("student_payment_status = ? AND student_payment_method <> ?",
		paymentmodel.StudentPaymentStatusPaid, paymentmodel.StudentPaymentMethodGateway).
		Scan(&manual).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate payments")
	}
	resp.Billing.PaidCents = paid.Cents
	resp.Billing.PaidCount = paid.N
	resp.Billing.PendingCents = pending.Cents
	resp.Billing.PendingCount = pending.N
	resp.Billing.ManualPaidCents = manual.Cents

	var events []paymentmodel.GatewayEventModel
	if err := ctl.DB.
		Where("gateway_event_school_id = ?", schoolID).
		Order("gateway_event_received_at DESC").
		Limit(10).
		Find(&events).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load gateway events")
	}
	resp.RecentEvents = make([]paymentdto.GatewayEventResponse, 0, len(events))
	for i := range events {
		resp.RecentEvents = append(resp.RecentEvents, paymentdto.ToGatewayEventResponse(&events[i]))
	}

	return helper.Success(c, "OK", resp)
}

// GET /api/a/dashboard/attendance-rate?days=30
// Rate counts present and late as attended, over closed sessions in the
// window.
func (ctl *DashboardController) AttendanceRate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []dto.BatchAttendanceRate
	if err := ctl.DB.Model(&attendancemodel.DugsiAttendanceSessionModel{}).
		Select(`batches.batch_id,
		        batches.batch_name,
		        COUNT(*)                                              AS sessions_closed,
		        COALESCE(SUM(dugsi_attendance_session_present_count),0) AS present,
		        COALESCE(SUM(dugsi_attendance_session_late_count),0)    AS late,
		        COALESCE(SUM(dugsi_attendance_session_absent_count),0)  AS absent,
		        COALESCE(SUM(dugsi_attendance_session_excused_count),0) AS excused`).
		Joins("JOIN batches ON batches.batch_id = dugsi_attendance_sessions.dugsi_attendance_session_batch_id").
		Where(`dugsi_attendance_session_school_id = ?
		       AND dugsi_attendance_session_attendance_status = ?
		       AND dugsi_attendance_session_status = ?
		       AND dugsi_attendance_session_date >= ?`,
			schoolID, attendancemodel.AttendanceStatusClosed,
			attendancemodel.SessionStatusCompleted, since).
		Group("batches.batch_id, batches.batch_name").
		Order("batches.batch_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate attendance")
	}

	for i := range rows {
		total := rows[i].Present + rows[i].Late + rows[i].Absent + rows[i].Excused
		if total > 0 {
			rows[i].Rate = float64(rows[i].Present+rows[i].Late) / float64(total)
		}
	}

	return helper.Success(c, "OK", dto.AttendanceRateResponse{
		WindowDays: days,
		Batches:    rows,
	})
}

func beginningOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
