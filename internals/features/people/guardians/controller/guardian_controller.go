package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/people/guardians/dto"
	"dugsiku_backend/internals/features/people/guardians/model"
	persondto "dugsiku_backend/internals/features/people/persons/dto"
	personmodel "dugsiku_backend/internals/features/people/persons/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type GuardianController struct {
	DB *gorm.DB
}

var errActiveLinkExists = errors.New("active guardian relationship already exists")

// POST /api/a/guardian-relationships
// The alive-check and the insert run in one transaction so the
// at-most-one-active-per-pair invariant holds under concurrent requests
// (the DB partial unique index backs it up).
func (ctl *GuardianController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.GuardianRelationshipCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.GuardianID == req.DependentID {
		return helper.Error(c, fiber.StatusBadRequest, "Guardian and dependent must differ")
	}
	if req.Kind == "" {
		req.Kind = model.GuardianKindOther
	}

	rel := model.GuardianRelationshipModel{
		GuardianRelationshipSchoolID:    schoolID,
		GuardianRelationshipGuardianID:  req.GuardianID,
		GuardianRelationshipDependentID: req.DependentID,
		GuardianRelationshipKind:        req.Kind,
		GuardianRelationshipIsActive:    true,
		GuardianRelationshipStartedAt:   time.Now(),
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var persons int64
		if err := tx.Model(&personmodel.PersonModel{}).
			Where("person_id IN ? AND person_school_id = ?",
				[]interface{}{req.GuardianID, req.DependentID}, schoolID).
			Count(&persons).Error; err != nil {
			return err
		}
		if persons != 2 {
			return gorm.ErrRecordNotFound
		}

		var active int64
		if err := tx.Model(&model.GuardianRelationshipModel{}).
			Where(`guardian_relationship_guardian_id = ?
			       AND guardian_relationship_dependent_id = ?
			       AND guardian_relationship_is_active = TRUE
			       AND guardian_relationship_deleted_at IS NULL`,
				req.GuardianID, req.DependentID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return errActiveLinkExists
		}

		return tx.Create(&rel).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Guardian or dependent not found at this school")
		case errors.Is(txErr, errActiveLinkExists):
			return helper.Error(c, fiber.StatusConflict, "An active relationship for this pair already exists")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create relationship")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Relationship created", dto.ToGuardianRelationshipResponse(&rel))
}

// POST /api/a/guardian-relationships/:id/deactivate
func (ctl *GuardianController) Deactivate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var rel model.GuardianRelationshipModel
	if err := ctl.DB.
		Where("guardian_relationship_id = ? AND guardian_relationship_school_id = ?", c.Params("id"), schoolID).
		First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Relationship not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !rel.GuardianRelationshipIsActive {
		return helper.Error(c, fiber.StatusConflict, "Relationship is already inactive")
	}

	now := time.Now()
	rel.GuardianRelationshipIsActive = false
	rel.GuardianRelationshipEndedAt = &now
	if err := ctl.DB.Save(&rel).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to deactivate relationship")
	}
	return helper.Success(c, "Relationship deactivated", dto.ToGuardianRelationshipResponse(&rel))
}

// GET /api/a/families/:guardianId
func (ctl *GuardianController) Family(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var guardian personmodel.PersonModel
	if err := ctl.DB.
		Where("person_id = ? AND person_school_id = ?", c.Params("guardianId"), schoolID).
		First(&guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Guardian not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var contacts []personmodel.ContactPointModel
	if err := ctl.DB.
		Where("contact_point_person_id = ?", guardian.PersonID).
		Order("contact_point_is_primary DESC").
		Find(&contacts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load contacts")
	}

	var rels []model.GuardianRelationshipModel
	if err := ctl.DB.
		Where(`guardian_relationship_guardian_id = ?
		       AND guardian_relationship_is_active = TRUE
		       AND guardian_relationship_deleted_at IS NULL`, guardian.PersonID).
		Find(&rels).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load relationships")
	}

	resp := dto.FamilyResponse{
		Guardian:   persondto.ToPersonResponse(&guardian, contacts),
		Dependents: make([]dto.FamilyDependent, 0, len(rels)),
	}
	for i := range rels {
		var dep personmodel.PersonModel
		if err := ctl.DB.First(&dep, "person_id = ?", rels[i].GuardianRelationshipDependentID).Error; err != nil {
			continue
		}
		resp.Dependents = append(resp.Dependents, dto.FamilyDependent{
			Relationship: dto.ToGuardianRelationshipResponse(&rels[i]),
			Person:       persondto.ToPersonResponse(&dep, nil),
		})
	}

	return helper.Success(c, "OK", resp)
}
