package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonModel is the canonical person record. Guardians and students are
// both persons; roles come from relationships and program profiles.
type PersonModel struct {
	PersonID       uuid.UUID `gorm:"column:person_id;type:uuid;default:gen_random_uuid();primaryKey" json:"person_id"`
	PersonSchoolID uuid.UUID `gorm:"column:person_school_id;type:uuid;not null;index:ix_person_school" json:"person_school_id"`

	PersonFirstName string     `gorm:"column:person_first_name;type:varchar(60);not null" json:"person_first_name"`
	PersonLastName  string     `gorm:"column:person_last_name;type:varchar(60);not null" json:"person_last_name"`
	PersonDOB       *time.Time `gorm:"column:person_dob;type:date" json:"person_dob,omitempty"`
	PersonGender    *string    `gorm:"column:person_gender;type:varchar(10)" json:"person_gender,omitempty"`
	PersonPhotoURL  *string    `gorm:"column:person_photo_url;type:text" json:"person_photo_url,omitempty"`
	PersonNote      *string    `gorm:"column:person_note;type:text" json:"person_note,omitempty"`

	PersonCreatedAt time.Time      `gorm:"column:person_created_at;not null;default:now();autoCreateTime" json:"person_created_at"`
	PersonUpdatedAt time.Time      `gorm:"column:person_updated_at;not null;default:now();autoUpdateTime" json:"person_updated_at"`
	PersonDeletedAt gorm.DeletedAt `gorm:"column:person_deleted_at;index" json:"-"`
}

func (PersonModel) TableName() string { return "persons" }

func (p *PersonModel) FullName() string {
	return p.PersonFirstName + " " + p.PersonLastName
}
