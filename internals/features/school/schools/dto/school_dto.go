package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/school/schools/model"
)

type SchoolCreateDTO struct {
	SchoolName         string   `json:"school_name" validate:"required,min=3,max=120"`
	SchoolSlug         *string  `json:"school_slug,omitempty" validate:"omitempty,min=3,max=120"`
	SchoolLatitude     *float64 `json:"school_latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	SchoolLongitude    *float64 `json:"school_longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	SchoolTimezone     *string  `json:"school_timezone,omitempty"`
	SchoolAddress      *string  `json:"school_address,omitempty"`
	SchoolContactPhone *string  `json:"school_contact_phone,omitempty"`
	SchoolContactEmail *string  `json:"school_contact_email,omitempty" validate:"omitempty,email"`
}

type SchoolAttachUserDTO struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type SchoolUpdateDTO struct {
	SchoolName         *string  `json:"school_name,omitempty" validate:"omitempty,min=3,max=120"`
	SchoolLatitude     *float64 `json:"school_latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	SchoolLongitude    *float64 `json:"school_longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	SchoolTimezone     *string  `json:"school_timezone,omitempty"`
	SchoolAddress      *string  `json:"school_address,omitempty"`
	SchoolContactPhone *string  `json:"school_contact_phone,omitempty"`
	SchoolContactEmail *string  `json:"school_contact_email,omitempty" validate:"omitempty,email"`
	SchoolIsActive     *bool    `json:"school_is_active,omitempty"`
}

type SchoolResponse struct {
	SchoolID           uuid.UUID `json:"school_id"`
	SchoolName         string    `json:"school_name"`
	SchoolSlug         string    `json:"school_slug"`
	SchoolLatitude     *float64  `json:"school_latitude,omitempty"`
	SchoolLongitude    *float64  `json:"school_longitude,omitempty"`
	SchoolTimezone     string    `json:"school_timezone"`
	SchoolAddress      *string   `json:"school_address,omitempty"`
	SchoolContactPhone *string   `json:"school_contact_phone,omitempty"`
	SchoolContactEmail *string   `json:"school_contact_email,omitempty"`
	SchoolLogoURL      *string   `json:"school_logo_url,omitempty"`
	SchoolIsActive     bool      `json:"school_is_active"`
	SchoolCreatedAt    time.Time `json:"school_created_at"`
}

func ToSchoolResponse(m *model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:           m.SchoolID,
		SchoolName:         m.SchoolName,
		SchoolSlug:         m.SchoolSlug,
		SchoolLatitude:     m.SchoolLatitude,
		SchoolLongitude:    m.SchoolLongitude,
		SchoolTimezone:     m.SchoolTimezone,
		SchoolAddress:      m.SchoolAddress,
		SchoolContactPhone: m.SchoolContactPhone,
		SchoolContactEmail: m.SchoolContactEmail,
		SchoolLogoURL:      m.SchoolLogoURL,
		SchoolIsActive:     m.SchoolIsActive,
		SchoolCreatedAt:    m.SchoolCreatedAt,
	}
}

func (d *SchoolUpdateDTO) Apply(m *model.SchoolModel) {
	if d.SchoolName != nil {
		m.SchoolName = *d.SchoolName
	}
	if d.SchoolLatitude != nil {
		m.SchoolLatitude = d.SchoolLatitude
	}
	if d.SchoolLongitude != nil {
		m.SchoolLongitude = d.SchoolLongitude
	}
	if d.SchoolTimezone != nil {
		m.SchoolTimezone = *d.SchoolTimezone
	}
	if d.SchoolAddress != nil {
		m.SchoolAddress = d.SchoolAddress
	}
	if d.SchoolContactPhone != nil {
		m.SchoolContactPhone = d.SchoolContactPhone
	}
	if d.SchoolContactEmail != nil {
		m.SchoolContactEmail = d.SchoolContactEmail
	}
	if d.SchoolIsActive != nil {
		m.SchoolIsActive = *d.SchoolIsActive
	}
}
