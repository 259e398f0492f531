package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherModel is the tenant-scoped teaching-staff record. It links a login
// user to the dugsi they teach at; sessions reference it for assignment.
type TeacherModel struct {
	TeacherID       uuid.UUID `gorm:"column:teacher_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_id"`
	TeacherSchoolID uuid.UUID `gorm:"column:teacher_school_id;type:uuid;not null;index:ix_teacher_school;uniqueIndex:uniq_teacher_school_user,priority:1" json:"teacher_school_id"`
	TeacherUserID   uuid.UUID `gorm:"column:teacher_user_id;type:uuid;not null;index;uniqueIndex:uniq_teacher_school_user,priority:2" json:"teacher_user_id"`

	TeacherDisplayName string  `gorm:"column:teacher_display_name;type:varchar(100);not null" json:"teacher_display_name"`
	TeacherSpecialty   *string `gorm:"column:teacher_specialty;type:varchar(100)" json:"teacher_specialty,omitempty"`
	TeacherPhone       *string `gorm:"column:teacher_phone;type:varchar(30)" json:"teacher_phone,omitempty"`

	TeacherIsActive bool `gorm:"column:teacher_is_active;not null;default:true" json:"teacher_is_active"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;not null;default:now();autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;not null;default:now();autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"-"`
}

func (TeacherModel) TableName() string { return "teachers" }
