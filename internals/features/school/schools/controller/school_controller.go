package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/school/schools/dto"
	"dugsiku_backend/internals/features/school/schools/model"
	authmodel "dugsiku_backend/internals/features/users/auth/model"
	authservice "dugsiku_backend/internals/features/users/auth/service"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type SchoolController struct {
	DB *gorm.DB
}

var errUserHasSchool = errors.New("user is already attached to a school")

// POST /api/a/schools
// Creating a dugsi binds the creating user to it and re-issues the token
// pair, so the very next request can hit the tenant-scoped endpoints.
func (ctl *SchoolController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SchoolCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	base := helper.Slugify(req.SchoolName, 120)
	if req.SchoolSlug != nil && strings.TrimSpace(*req.SchoolSlug) != "" {
		base = helper.Slugify(*req.SchoolSlug, 120)
	}
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctl.DB, "schools", "school_slug", base, nil, 120)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	school := model.SchoolModel{
		SchoolName:         strings.TrimSpace(req.SchoolName),
		SchoolSlug:         slug,
		SchoolLatitude:     req.SchoolLatitude,
		SchoolLongitude:    req.SchoolLongitude,
		SchoolAddress:      req.SchoolAddress,
		SchoolContactPhone: req.SchoolContactPhone,
		SchoolContactEmail: req.SchoolContactEmail,
	}
	if req.SchoolTimezone != nil && *req.SchoolTimezone != "" {
		school.SchoolTimezone = *req.SchoolTimezone
	}

	var creator authmodel.UserModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&creator, "id = ?", userID).Error; err != nil {
			return err
		}
		if creator.SchoolID != nil {
			return errUserHasSchool
		}
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		creator.SchoolID = &school.SchoolID
		return tx.Save(&creator).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		case errors.Is(txErr, errUserHasSchool):
			return helper.Error(c, fiber.StatusConflict, "You already manage a school")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create school")
		}
	}

	access, refresh, err := authservice.GenerateTokenPair(&creator)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "School created", fiber.Map{
		"school":        dto.ToSchoolResponse(&school),
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// POST /api/a/schools/attach-user
// Binds an existing login user to the caller's school; their next login or
// refresh carries the tenant claim. Used to onboard co-admins and staff.
func (ctl *SchoolController) AttachUser(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SchoolAttachUserDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user authmodel.UserModel
	if err := ctl.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if user.SchoolID != nil {
		if *user.SchoolID == schoolID {
			return helper.Success(c, "User already attached", fiber.Map{
				"user_id":   user.ID,
				"school_id": schoolID,
			})
		}
		return helper.Error(c, fiber.StatusConflict, "User belongs to another school")
	}

	user.SchoolID = &schoolID
	if err := ctl.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to attach user")
	}
	return helper.Success(c, "User attached", fiber.Map{
		"user_id":   user.ID,
		"school_id": schoolID,
	})
}

// PATCH /api/a/schools/:id
func (ctl *SchoolController) Update(c *fiber.Ctx) error {
	school, err := ctl.findByIDParam(c)
	if err != nil {
		return err
	}

	var req dto.SchoolUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(school)
	if err := ctl.DB.Save(school).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update school")
	}
	return helper.Success(c, "School updated", dto.ToSchoolResponse(school))
}

// POST /api/a/schools/:id/logo (multipart field "logo")
func (ctl *SchoolController) UploadLogo(c *fiber.Ctx) error {
	school, err := ctl.findByIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Logo file missing")
	}

	url, err := helper.UploadImageToStorage("school-logos", fileHeader)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Logo upload failed")
	}

	school.SchoolLogoURL = &url
	if err := ctl.DB.Save(school).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save logo URL")
	}
	return helper.Success(c, "Logo uploaded", dto.ToSchoolResponse(school))
}

// GET /api/public/schools/:slug
func (ctl *SchoolController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	var school model.SchoolModel
	if err := ctl.DB.Where("LOWER(school_slug) = ? AND school_is_active = TRUE", slug).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "School not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.Success(c, "OK", dto.ToSchoolResponse(&school))
}

// GET /api/public/schools
func (ctl *SchoolController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.SchoolModel{}).Where("school_is_active = TRUE")
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("school_name ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count schools")
	}

	var rows []model.SchoolModel
	if err := q.Order("school_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list schools")
	}

	out := make([]dto.SchoolResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToSchoolResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"schools":    out,
		"pagination": helper.BuildPagination(p, total),
	})
}

func (ctl *SchoolController) findByIDParam(c *fiber.Ctx) (*model.SchoolModel, error) {
	id := strings.TrimSpace(c.Params("id"))
	var school model.SchoolModel
	if err := ctl.DB.Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	return &school, nil
}
