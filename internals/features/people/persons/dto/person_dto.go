package dto

import (
	"time"

	"github.com/google/uuid"

	"dugsiku_backend/internals/features/people/persons/model"
)

type PersonCreateDTO struct {
	PersonFirstName string     `json:"person_first_name" validate:"required,min=1,max=60"`
	PersonLastName  string     `json:"person_last_name" validate:"required,min=1,max=60"`
	PersonDOB       *time.Time `json:"person_dob,omitempty"`
	PersonGender    *string    `json:"person_gender,omitempty" validate:"omitempty,oneof=male female"`
	PersonNote      *string    `json:"person_note,omitempty"`

	// Contacts created together with the person
	Contacts []ContactPointCreateDTO `json:"contacts,omitempty" validate:"omitempty,dive"`
}

type PersonUpdateDTO struct {
	PersonFirstName *string    `json:"person_first_name,omitempty" validate:"omitempty,min=1,max=60"`
	PersonLastName  *string    `json:"person_last_name,omitempty" validate:"omitempty,min=1,max=60"`
	PersonDOB       *time.Time `json:"person_dob,omitempty"`
	PersonGender    *string    `json:"person_gender,omitempty" validate:"omitempty,oneof=male female"`
	PersonNote      *string    `json:"person_note,omitempty"`
}

type ContactPointCreateDTO struct {
	ContactPointType      string  `json:"contact_point_type" validate:"required,oneof=email phone whatsapp"`
	ContactPointValue     string  `json:"contact_point_value" validate:"required,max=255"`
	ContactPointLabel     *string `json:"contact_point_label,omitempty" validate:"omitempty,max=40"`
	ContactPointIsPrimary bool    `json:"contact_point_is_primary"`
}

type ContactPointResponse struct {
	ContactPointID        uuid.UUID `json:"contact_point_id"`
	ContactPointType      string    `json:"contact_point_type"`
	ContactPointValue     string    `json:"contact_point_value"`
	ContactPointLabel     *string   `json:"contact_point_label,omitempty"`
	ContactPointIsPrimary bool      `json:"contact_point_is_primary"`
}

type PersonResponse struct {
	PersonID        uuid.UUID              `json:"person_id"`
	PersonSchoolID  uuid.UUID              `json:"person_school_id"`
	PersonFirstName string                 `json:"person_first_name"`
	PersonLastName  string                 `json:"person_last_name"`
	PersonDOB       *time.Time             `json:"person_dob,omitempty"`
	PersonGender    *string                `json:"person_gender,omitempty"`
	PersonPhotoURL  *string                `json:"person_photo_url,omitempty"`
	PersonNote      *string                `json:"person_note,omitempty"`
	PersonCreatedAt time.Time              `json:"person_created_at"`
	Contacts        []ContactPointResponse `json:"contacts,omitempty"`
}

func ToContactPointResponse(m *model.ContactPointModel) ContactPointResponse {
	return ContactPointResponse{
		ContactPointID:        m.ContactPointID,
		ContactPointType:      string(m.ContactPointType),
		ContactPointValue:     m.ContactPointValue,
		ContactPointLabel:     m.ContactPointLabel,
		ContactPointIsPrimary: m.ContactPointIsPrimary,
	}
}

func ToPersonResponse(m *model.PersonModel, contacts []model.ContactPointModel) PersonResponse {
	resp := PersonResponse{
		PersonID:        m.PersonID,
		PersonSchoolID:  m.PersonSchoolID,
		PersonFirstName: m.PersonFirstName,
		PersonLastName:  m.PersonLastName,
		PersonDOB:       m.PersonDOB,
		PersonGender:    m.PersonGender,
		PersonPhotoURL:  m.PersonPhotoURL,
		PersonNote:      m.PersonNote,
		PersonCreatedAt: m.PersonCreatedAt,
	}
	for i := range contacts {
		resp.Contacts = append(resp.Contacts, ToContactPointResponse(&contacts[i]))
	}
	return resp
}

func (d *PersonUpdateDTO) Apply(m *model.PersonModel) {
	if d.PersonFirstName != nil {
		m.PersonFirstName = *d.PersonFirstName
	}
	if d.PersonLastName != nil {
		m.PersonLastName = *d.PersonLastName
	}
	if d.PersonDOB != nil {
		m.PersonDOB = d.PersonDOB
	}
	if d.PersonGender != nil {
		m.PersonGender = d.PersonGender
	}
	if d.PersonNote != nil {
		m.PersonNote = d.PersonNote
	}
}
