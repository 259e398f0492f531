package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"dugsiku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler purges blacklist rows whose tokens have
// been expired for TOKEN_BLACKLIST_TTL_DAYS (default 7).
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expired []model.TokenBlacklist
			if err := db.
				Where("token_blacklist_expired_at < ? AND token_blacklist_deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expired).Error; err != nil {
				log.Printf("[CLEANUP] fetch expired tokens failed: %v", err)
			} else if len(expired) > 0 {
				if err := db.Delete(&expired).Error; err != nil {
					log.Printf("[CLEANUP] delete expired tokens failed: %v", err)
				} else {
					log.Printf("[CLEANUP] removed %d expired blacklist tokens", len(expired))
				}
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
