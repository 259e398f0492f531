package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"dugsiku_backend/internals/features/attendance/sessions/controller"
	"dugsiku_backend/internals/features/attendance/sessions/model"
	"dugsiku_backend/internals/features/attendance/sessions/service"
)

// StartAutoCloseScheduler sweeps open sessions whose week cutoff has passed
// and closes them, recomputing counts. Runs hourly; cutoffs are evaluated in
// each session's school timezone.
func StartAutoCloseScheduler(db *gorm.DB) {
	go func() {
		log.Println("[SCHEDULER] attendance auto-close started")
		for {
			sweepOnce(db)
			time.Sleep(1 * time.Hour)
		}
	}()
}

func sweepOnce(db *gorm.DB) {
	type openSession struct {
		model.DugsiAttendanceSessionModel
		SchoolTimezone string
	}

	var rows []openSession
	if err := db.Model(&model.DugsiAttendanceSessionModel{}).
		Select("dugsi_attendance_sessions.*, schools.school_timezone").
		Joins("JOIN schools ON schools.school_id = dugsi_attendance_sessions.dugsi_attendance_session_school_id").
		Where(`dugsi_attendance_session_attendance_status = ?
		       AND dugsi_attendance_session_status <> ?`,
			model.AttendanceStatusOpen, model.SessionStatusCanceled).
		Limit(200).
		Scan(&rows).Error; err != nil {
		log.Printf("[SCHEDULER] auto-close query failed: %v", err)
		return
	}

	now := time.Now()
	closed := 0
	for i := range rows {
		loc, err := time.LoadLocation(rows[i].SchoolTimezone)
		if err != nil {
			loc = time.UTC
		}
		if !service.CutoffPassed(rows[i].DugsiAttendanceSessionDate, now, loc) {
			continue
		}
		if err := controller.CloseSession(db, &rows[i].DugsiAttendanceSessionModel, now, loc); err != nil {
			log.Printf("[SCHEDULER] auto-close session %s failed: %v",
				rows[i].DugsiAttendanceSessionID, err)
			continue
		}
		closed++
	}
	if closed > 0 {
		log.Printf("[SCHEDULER] auto-closed %d attendance sessions", closed)
	}
}
