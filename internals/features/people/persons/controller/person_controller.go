package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"dugsiku_backend/internals/features/people/persons/dto"
	"dugsiku_backend/internals/features/people/persons/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type PersonController struct {
	DB *gorm.DB
}

// POST /api/a/persons creates the person and any contacts in one transaction.
func (ctl *PersonController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PersonCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	person := model.PersonModel{
		PersonSchoolID:  schoolID,
		PersonFirstName: strings.TrimSpace(req.PersonFirstName),
		PersonLastName:  strings.TrimSpace(req.PersonLastName),
		PersonDOB:       req.PersonDOB,
		PersonGender:    req.PersonGender,
		PersonNote:      req.PersonNote,
	}

	var contacts []model.ContactPointModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
		for _, in := range req.Contacts {
			cp, err := buildContactPoint(schoolID, person.PersonID, in)
			if err != nil {
				return err
			}
			if err := tx.Create(&cp).Error; err != nil {
				return err
			}
			contacts = append(contacts, cp)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, errBadContactValue) {
			return helper.Error(c, fiber.StatusBadRequest, "Contact value is not a valid email or phone number")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create person")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Person created", dto.ToPersonResponse(&person, contacts))
}

// GET /api/a/persons/:id
func (ctl *PersonController) Get(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var person model.PersonModel
	if err := ctl.DB.
		Where("person_id = ? AND person_school_id = ?", c.Params("id"), schoolID).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var contacts []model.ContactPointModel
	if err := ctl.DB.
		Where("contact_point_person_id = ?", person.PersonID).
		Order("contact_point_is_primary DESC, contact_point_created_at ASC").
		Find(&contacts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load contacts")
	}

	return helper.Success(c, "OK", dto.ToPersonResponse(&person, contacts))
}

// PATCH /api/a/persons/:id
func (ctl *PersonController) Update(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var person model.PersonModel
	if err := ctl.DB.
		Where("person_id = ? AND person_school_id = ?", c.Params("id"), schoolID).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var req dto.PersonUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(&person)
	if err := ctl.DB.Save(&person).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update person")
	}
	return helper.Success(c, "Person updated", dto.ToPersonResponse(&person, nil))
}

// GET /api/a/persons
func (ctl *PersonController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&model.PersonModel{}).Where("person_school_id = ?", schoolID)
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + v + "%"
		q = q.Where("person_first_name ILIKE ? OR person_last_name ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count persons")
	}

	var rows []model.PersonModel
	if err := q.Order("person_last_name ASC, person_first_name ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list persons")
	}

	out := make([]dto.PersonResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToPersonResponse(&rows[i], nil))
	}
	return helper.Success(c, "OK", fiber.Map{
		"persons":    out,
		"pagination": helper.BuildPagination(p, total),
	})
}

// POST /api/a/persons/:id/contacts
func (ctl *PersonController) AddContact(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	personID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid person id")
	}

	var exists int64
	if err := ctl.DB.Model(&model.PersonModel{}).
		Where("person_id = ? AND person_school_id = ?", personID, schoolID).
		Count(&exists).Error; err != nil || exists == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Person not found")
	}

	var req dto.ContactPointCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cp, err := buildContactPoint(schoolID, personID, req)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Contact value is not a valid email or phone number")
	}
	if err := ctl.DB.Create(&cp).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create contact")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Contact created", dto.ToContactPointResponse(&cp))
}

// DELETE /api/a/persons/:id/contacts/:contactId
func (ctl *PersonController) DeleteContact(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	res := ctl.DB.
		Where("contact_point_id = ? AND contact_point_person_id = ? AND contact_point_school_id = ?",
			c.Params("contactId"), c.Params("id"), schoolID).
		Delete(&model.ContactPointModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete contact")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Contact not found")
	}
	return helper.Success(c, "Contact deleted", nil)
}

// POST /api/a/persons/:id/photo
func (ctl *PersonController) UploadPhoto(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var person model.PersonModel
	if err := ctl.DB.
		Where("person_id = ? AND person_school_id = ?", c.Params("id"), schoolID).
		First(&person).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Person not found")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Photo file missing")
	}

	url, err := helper.UploadImageToStorage("person-photos", fileHeader)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Photo upload failed")
	}

	person.PersonPhotoURL = &url
	if err := ctl.DB.Save(&person).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save photo URL")
	}
	return helper.Success(c, "Photo uploaded", dto.ToPersonResponse(&person, nil))
}

var errBadContactValue = errors.New("bad contact value")

func buildContactPoint(schoolID, personID uuid.UUID, in dto.ContactPointCreateDTO) (model.ContactPointModel, error) {
	value := in.ContactPointValue
	switch model.ContactPointType(in.ContactPointType) {
	case model.ContactPointEmail:
		value = helper.NormalizeEmail(value)
	case model.ContactPointPhone, model.ContactPointWhatsapp:
		value = helper.NormalizePhone(value)
	}
	if value == "" {
		return model.ContactPointModel{}, errBadContactValue
	}
	return model.ContactPointModel{
		ContactPointSchoolID:  schoolID,
		ContactPointPersonID:  personID,
		ContactPointType:      model.ContactPointType(in.ContactPointType),
		ContactPointValue:     value,
		ContactPointLabel:     in.ContactPointLabel,
		ContactPointIsPrimary: in.ContactPointIsPrimary,
	}, nil
}
