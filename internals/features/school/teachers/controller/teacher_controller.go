package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/school/teachers/dto"
	"dugsiku_backend/internals/features/school/teachers/model"
	authmodel "dugsiku_backend/internals/features/users/auth/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type TeacherController struct {
	DB *gorm.DB
}

var errUserElsewhere = errors.New("user belongs to another school")

// POST /api/a/teachers
// Also attaches the login user to this school when they have no tenant yet,
// so their next token carries the claim the /api/t endpoints need.
func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.TeacherCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	teacher := model.TeacherModel{
		TeacherSchoolID:    schoolID,
		TeacherUserID:      req.TeacherUserID,
		TeacherDisplayName: strings.TrimSpace(req.TeacherDisplayName),
		TeacherSpecialty:   req.TeacherSpecialty,
		TeacherPhone:       req.TeacherPhone,
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var user authmodel.UserModel
		if err := tx.First(&user, "id = ?", req.TeacherUserID).Error; err != nil {
			return err
		}
		if user.SchoolID == nil {
			user.SchoolID = &schoolID
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		} else if *user.SchoolID != schoolID {
			return errUserElsewhere
		}

		// A soft-deleted row still occupies the (school, user) unique
		// index; revive it instead of inserting a twin.
		var prior model.TeacherModel
		err := tx.Unscoped().
			Where("teacher_school_id = ? AND teacher_user_id = ? AND teacher_deleted_at IS NOT NULL",
				schoolID, req.TeacherUserID).
			First(&prior).Error
		if err == nil {
			prior.TeacherDisplayName = teacher.TeacherDisplayName
			prior.TeacherSpecialty = teacher.TeacherSpecialty
			prior.TeacherPhone = teacher.TeacherPhone
			prior.TeacherIsActive = true
			prior.TeacherDeletedAt = gorm.DeletedAt{}
			if err := tx.Unscoped().Save(&prior).Error; err != nil {
				return err
			}
			teacher = prior
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&teacher).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		case errors.Is(txErr, errUserElsewhere):
			return helper.Error(c, fiber.StatusConflict, "User belongs to another school")
		default:
			low := strings.ToLower(txErr.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helper.Error(c, fiber.StatusConflict, "User is already a teacher at this school")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create teacher")
		}
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Teacher created", dto.ToTeacherResponse(&teacher))
}

// PATCH /api/a/teachers/:id
func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var teacher model.TeacherModel
	if err := ctl.DB.
		Where("teacher_id = ? AND teacher_school_id = ?", c.Params("id"), schoolID).
		First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var req dto.TeacherUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(&teacher)
	if err := ctl.DB.Save(&teacher).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}
	return helper.Success(c, "Teacher updated", dto.ToTeacherResponse(&teacher))
}

// GET /api/a/teachers
func (ctl *TeacherController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.TeacherModel{}).Where("teacher_school_id = ?", schoolID)
	if v := c.Query("active"); v != "" {
		q = q.Where("teacher_is_active = ?", v == "true")
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("teacher_display_name ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var rows []model.TeacherModel
	if err := q.Order("teacher_display_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list teachers")
	}

	out := make([]dto.TeacherResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToTeacherResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"teachers":   out,
		"pagination": helper.BuildPagination(p, total),
	})
}

// DELETE /api/a/teachers/:id (soft delete)
func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	res := ctl.DB.
		Where("teacher_id = ? AND teacher_school_id = ?", c.Params("id"), schoolID).
		Delete(&model.TeacherModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete teacher")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Teacher not found")
	}
	return helper.Success(c, "Teacher deleted", nil)
}
