package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactPointType string

const (
	ContactPointEmail    ContactPointType = "email"
	ContactPointPhone    ContactPointType = "phone"
	ContactPointWhatsapp ContactPointType = "whatsapp"
)

// ContactPointModel stores one normalized contact value for a person.
// Values are stored canonical (lowercased email, digits-only phone) so the
// webhook matcher can compare with plain equality.
type ContactPointModel struct {
	ContactPointID       uuid.UUID `gorm:"column:contact_point_id;type:uuid;default:gen_random_uuid();primaryKey" json:"contact_point_id"`
	ContactPointSchoolID uuid.UUID `gorm:"column:contact_point_school_id;type:uuid;not null;index" json:"contact_point_school_id"`
	ContactPointPersonID uuid.UUID `gorm:"column:contact_point_person_id;type:uuid;not null;index:ix_contact_point_person" json:"contact_point_person_id"`

	ContactPointType  ContactPointType `gorm:"column:contact_point_type;type:varchar(12);not null" json:"contact_point_type"`
	ContactPointValue string           `gorm:"column:contact_point_value;type:varchar(255);not null;index:ix_contact_point_value" json:"contact_point_value"`
	ContactPointLabel *string          `gorm:"column:contact_point_label;type:varchar(40)" json:"contact_point_label,omitempty"`

	ContactPointIsPrimary bool `gorm:"column:contact_point_is_primary;not null;default:false" json:"contact_point_is_primary"`

	ContactPointCreatedAt time.Time      `gorm:"column:contact_point_created_at;not null;default:now();autoCreateTime" json:"contact_point_created_at"`
	ContactPointUpdatedAt time.Time      `gorm:"column:contact_point_updated_at;not null;default:now();autoUpdateTime" json:"contact_point_updated_at"`
	ContactPointDeletedAt gorm.DeletedAt `gorm:"column:contact_point_deleted_at;index" json:"-"`
}

func (ContactPointModel) TableName() string { return "contact_points" }
