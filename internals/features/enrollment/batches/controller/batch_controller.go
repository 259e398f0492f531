package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/enrollment/batches/dto"
	"dugsiku_backend/internals/features/enrollment/batches/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type BatchController struct {
	DB *gorm.DB
}

// POST /api/a/batches
func (ctl *BatchController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BatchCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	batch := model.BatchModel{
		BatchSchoolID:        schoolID,
		BatchName:            strings.TrimSpace(req.BatchName),
		BatchProgramKind:     req.BatchProgramKind,
		BatchStartDate:       req.BatchStartDate,
		BatchEndDate:         req.BatchEndDate,
		BatchWeekdays:        pq.Int64Array(req.BatchWeekdays),
		BatchCapacity:        req.BatchCapacity,
		BatchMonthlyFeeCents: req.BatchMonthlyFeeCents,
		BatchTeacherID:       req.BatchTeacherID,
	}
	if batch.BatchProgramKind == "" {
		batch.BatchProgramKind = model.BatchProgramQuran
	}

	if err := ctl.DB.Create(&batch).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create batch")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Batch created", dto.ToBatchResponse(&batch))
}

// PATCH /api/a/batches/:id
func (ctl *BatchController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var batch model.BatchModel
	if err := ctl.DB.
		Where("batch_id = ? AND batch_school_id = ?", c.Params("id"), schoolID).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var req dto.BatchUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(&batch)
	if err := ctl.DB.Save(&batch).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update batch")
	}
	return helper.Success(c, "Batch updated", dto.ToBatchResponse(&batch))
}

// GET /api/a/batches
func (ctl *BatchController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.BatchModel{}).Where("batch_school_id = ?", schoolID)
	if v := c.Query("active"); v != "" {
		q = q.Where("batch_is_active = ?", v == "true")
	}
	if v := c.Query("program"); v != "" {
		q = q.Where("batch_program_kind = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count batches")
	}

	var rows []model.BatchModel
	if err := q.Order("batch_start_date DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list batches")
	}

	out := make([]dto.BatchResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToBatchResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"batches":    out,
		"pagination": helper.BuildPagination(p, total),
	})
}
