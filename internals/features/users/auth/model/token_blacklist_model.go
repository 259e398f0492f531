package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklist holds revoked access tokens until they expire.
type TokenBlacklist struct {
	TokenBlacklistID        uuid.UUID      `gorm:"column:token_blacklist_id;type:uuid;default:gen_random_uuid();primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string         `gorm:"column:token_blacklist_token;type:text;not null;uniqueIndex" json:"token_blacklist_token"`
	TokenBlacklistUserID    *uuid.UUID     `gorm:"column:token_blacklist_user_id;type:uuid;index" json:"token_blacklist_user_id,omitempty"`
	TokenBlacklistExpiredAt time.Time      `gorm:"column:token_blacklist_expired_at;not null;index" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time      `gorm:"column:token_blacklist_created_at;not null;default:now();autoCreateTime" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
