package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchmodel "dugsiku_backend/internals/features/enrollment/batches/model"
	"dugsiku_backend/internals/features/enrollment/programs/dto"
	"dugsiku_backend/internals/features/enrollment/programs/model"
	personmodel "dugsiku_backend/internals/features/people/persons/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type EnrollmentController struct {
	DB *gorm.DB
}

var (
	errBatchFull       = errors.New("batch is at capacity")
	errAlreadyEnrolled = errors.New("student already has a profile in this batch")
)

// POST /api/a/enrollments creates the program profile and its pending
// enrollment in one transaction. Capacity counts non-withdrawn enrollments.
func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EnrollRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	profile := model.ProgramProfileModel{
		ProgramProfileSchoolID:   schoolID,
		ProgramProfileBatchID:    req.BatchID,
		ProgramProfileStudentID:  req.StudentID,
		ProgramProfileLevel:      req.Level,
		ProgramProfileCurrentJuz: req.CurrentJuz,
		ProgramProfileNote:       req.Note,
	}
	enrollment := model.EnrollmentModel{
		EnrollmentSchoolID: schoolID,
		EnrollmentStatus:   model.EnrollmentPending,
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var batch batchmodel.BatchModel
		if err := tx.Where("batch_id = ? AND batch_school_id = ? AND batch_is_active = TRUE",
			req.BatchID, schoolID).First(&batch).Error; err != nil {
			return err
		}

		var student int64
		if err := tx.Model(&personmodel.PersonModel{}).
			Where("person_id = ? AND person_school_id = ?", req.StudentID, schoolID).
			Count(&student).Error; err != nil {
			return err
		}
		if student == 0 {
			return gorm.ErrRecordNotFound
		}

		var existing int64
		if err := tx.Model(&model.ProgramProfileModel{}).
			Where("program_profile_batch_id = ? AND program_profile_student_id = ?",
				req.BatchID, req.StudentID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyEnrolled
		}

		if batch.BatchCapacity > 0 {
			var occupied int64
			if err := tx.Model(&model.EnrollmentModel{}).
				Joins("JOIN program_profiles ON program_profiles.program_profile_id = enrollments.enrollment_program_profile_id").
				Where(`program_profiles.program_profile_batch_id = ?
				       AND enrollments.enrollment_status IN ?`,
					req.BatchID, []string{string(model.EnrollmentPending), string(model.EnrollmentActive)}).
				Count(&occupied).Error; err != nil {
				return err
			}
			if occupied >= int64(batch.BatchCapacity) {
				return errBatchFull
			}
		}

		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		enrollment.EnrollmentProgramProfileID = profile.ProgramProfileID
		return tx.Create(&enrollment).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Batch or student not found at this school")
		case errors.Is(txErr, errAlreadyEnrolled):
			return helper.Error(c, fiber.StatusConflict, "Student is already enrolled in this batch")
		case errors.Is(txErr, errBatchFull):
			return helper.Error(c, fiber.StatusConflict, "Batch is at capacity")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to enroll student")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student enrolled", dto.EnrollResponseDTO{
		Profile:    dto.ToProgramProfileResponse(&profile),
		Enrollment: dto.ToEnrollmentResponse(&enrollment),
	})
}

// POST /api/a/enrollments/:id/activate
func (ctl *EnrollmentController) Activate(c *fiber.Ctx) error {
	return ctl.transition(c, model.EnrollmentActive)
}

// POST /api/a/enrollments/:id/complete
func (ctl *EnrollmentController) Complete(c *fiber.Ctx) error {
	return ctl.transition(c, model.EnrollmentCompleted)
}

// POST /api/a/enrollments/:id/withdraw
func (ctl *EnrollmentController) Withdraw(c *fiber.Ctx) error {
	return ctl.transition(c, model.EnrollmentWithdrawn)
}

func (ctl *EnrollmentController) transition(c *fiber.Ctx, to model.EnrollmentStatus) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EnrollmentTransitionDTO
	_ = c.BodyParser(&req)

	var enrollment model.EnrollmentModel
	if err := ctl.DB.
		Where("enrollment_id = ? AND enrollment_school_id = ?", c.Params("id"), schoolID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !model.CanTransition(enrollment.EnrollmentStatus, to) {
		return helper.Error(c, fiber.StatusConflict,
			"Cannot move enrollment from "+string(enrollment.EnrollmentStatus)+" to "+string(to))
	}

	enrollment.ApplyTransition(to, time.Now())
	if req.Note != nil {
		enrollment.EnrollmentNote = req.Note
	}
	if err := ctl.DB.Save(&enrollment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update enrollment")
	}
	return helper.Success(c, "Enrollment updated", dto.ToEnrollmentResponse(&enrollment))
}

// PATCH /api/a/program-profiles/:id
func (ctl *EnrollmentController) UpdateProfile(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var profile model.ProgramProfileModel
	if err := ctl.DB.
		Where("program_profile_id = ? AND program_profile_school_id = ?", c.Params("id"), schoolID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Program profile not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var req dto.ProgramProfileUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Level != nil {
		profile.ProgramProfileLevel = req.Level
	}
	if req.CurrentJuz != nil {
		profile.ProgramProfileCurrentJuz = req.CurrentJuz
	}
	if req.Note != nil {
		profile.ProgramProfileNote = req.Note
	}
	if err := ctl.DB.Save(&profile).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.Success(c, "Profile updated", dto.ToProgramProfileResponse(&profile))
}

// GET /api/a/enrollments
func (ctl *EnrollmentController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.EnrollmentModel{}).
		Joins("JOIN program_profiles ON program_profiles.program_profile_id = enrollments.enrollment_program_profile_id").
		Where("enrollments.enrollment_school_id = ?", schoolID)

	if v := c.Query("status"); v != "" {
		q = q.Where("enrollments.enrollment_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("batch_id")); v != "" {
		q = q.Where("program_profiles.program_profile_batch_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		q = q.Where("program_profiles.program_profile_student_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var rows []model.EnrollmentModel
	if err := q.Order("enrollments.enrollment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list enrollments")
	}

	out := make([]dto.EnrollmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToEnrollmentResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"enrollments": out,
		"pagination":  helper.BuildPagination(p, total),
	})
}
