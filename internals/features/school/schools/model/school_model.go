package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel is the tenant record: one row per dugsi.
type SchoolModel struct {
	SchoolID   uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`
	SchoolName string    `gorm:"column:school_name;type:varchar(120);not null" json:"school_name"`
	SchoolSlug string    `gorm:"column:school_slug;type:varchar(120);not null;uniqueIndex" json:"school_slug"`

	// Location, used for the prayer schedule
	SchoolLatitude  *float64 `gorm:"column:school_latitude" json:"school_latitude,omitempty"`
	SchoolLongitude *float64 `gorm:"column:school_longitude" json:"school_longitude,omitempty"`
	SchoolTimezone  string   `gorm:"column:school_timezone;type:varchar(64);not null;default:'America/Chicago'" json:"school_timezone"`

	SchoolAddress      *string `gorm:"column:school_address;type:text" json:"school_address,omitempty"`
	SchoolContactPhone *string `gorm:"column:school_contact_phone;type:varchar(30)" json:"school_contact_phone,omitempty"`
	SchoolContactEmail *string `gorm:"column:school_contact_email;type:varchar(255)" json:"school_contact_email,omitempty"`
	SchoolLogoURL      *string `gorm:"column:school_logo_url;type:text" json:"school_logo_url,omitempty"`

	SchoolIsActive bool `gorm:"column:school_is_active;not null;default:true" json:"school_is_active"`

	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;not null;default:now();autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;not null;default:now();autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"-"`
}

func (SchoolModel) TableName() string { return "schools" }
