package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dugsiku_backend/internals/features/attendance/sessions/dto"
	"dugsiku_backend/internals/features/attendance/sessions/model"
	"dugsiku_backend/internals/features/attendance/sessions/service"
	batchmodel "dugsiku_backend/internals/features/enrollment/batches/model"
	schoolmodel "dugsiku_backend/internals/features/school/schools/model"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type SessionController struct {
	DB *gorm.DB
}

var (
	errSessionClosed   = errors.New("attendance on this session is closed")
	errNotClosableYet  = errors.New("session is in a future week")
	errSessionCanceled = errors.New("session is canceled")
)

// POST /api/a/attendance/sessions
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SessionCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var batch batchmodel.BatchModel
	if err := ctl.DB.
		Where("batch_id = ? AND batch_school_id = ? AND batch_is_active = TRUE", req.BatchID, schoolID).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Batch not found or inactive")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !batch.MeetsOn(req.Date.Weekday()) {
		return helper.Error(c, fiber.StatusBadRequest, "Batch does not meet on that weekday")
	}

	teacherID := req.TeacherID
	if teacherID == nil {
		teacherID = batch.BatchTeacherID
	}

	session := model.DugsiAttendanceSessionModel{
		DugsiAttendanceSessionSchoolID:         schoolID,
		DugsiAttendanceSessionBatchID:          req.BatchID,
		DugsiAttendanceSessionDate:             req.Date,
		DugsiAttendanceSessionTeacherID:        teacherID,
		DugsiAttendanceSessionStatus:           model.SessionStatusScheduled,
		DugsiAttendanceSessionAttendanceStatus: model.AttendanceStatusOpen,
		DugsiAttendanceSessionNote:             req.Note,
	}
	if err := ctl.DB.Create(&session).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session created", dto.ToSessionResponse(&session))
}

// GET /api/a/attendance/sessions
func (ctl *SessionController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&model.DugsiAttendanceSessionModel{}).
		Where("dugsi_attendance_session_school_id = ?", schoolID)
	if b := c.Query("batch_id"); b != "" {
		q = q.Where("dugsi_attendance_session_batch_id = ?", b)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("dugsi_attendance_session_status = ?", s)
	}
	if a := c.Query("attendance_status"); a != "" {
		q = q.Where("dugsi_attendance_session_attendance_status = ?", a)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("dugsi_attendance_session_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("dugsi_attendance_session_date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count sessions")
	}

	var rows []model.DugsiAttendanceSessionModel
	if err := q.
		Order("dugsi_attendance_session_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	out := make([]dto.SessionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToSessionResponse(&rows[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"sessions":   out,
		"pagination": helper.BuildPagination(paging, total),
	})
}

// GET /api/a/attendance/sessions/:id
func (ctl *SessionController) Detail(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	session, err := ctl.findSession(c.Params("id"), schoolID)
	if err != nil {
		return sessionLookupError(c, err)
	}

	var records []model.AttendanceRecordModel
	if err := ctl.DB.
		Where("attendance_record_session_id = ?", session.DugsiAttendanceSessionID).
		Order("attendance_record_created_at ASC").
		Find(&records).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load records")
	}

	resp := dto.SessionDetailResponse{
		Session: dto.ToSessionResponse(session),
		Records: make([]dto.RecordResponse, 0, len(records)),
	}
	for i := range records {
		resp.Records = append(resp.Records, dto.ToRecordResponse(&records[i]))
	}
	return helper.Success(c, "OK", resp)
}

// POST /api/t/attendance/sessions/:id/marks
// Upserts one row per (session, student); re-marking overwrites the status.
func (ctl *SessionController) BulkMark(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkMarkDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session, err := ctl.findSession(c.Params("id"), schoolID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.DugsiAttendanceSessionStatus == model.SessionStatusCanceled {
		return helper.Error(c, fiber.StatusConflict, "Session is canceled")
	}
	if !session.IsOpen() {
		return helper.Error(c, fiber.StatusConflict, "Attendance on this session is closed")
	}

	rows := make([]model.AttendanceRecordModel, 0, len(req.Marks))
	for _, m := range req.Marks {
		if !model.ValidRecordStatus(m.Status) {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid mark status: "+m.Status)
		}
		rows = append(rows, model.AttendanceRecordModel{
			AttendanceRecordSchoolID:  schoolID,
			AttendanceRecordSessionID: session.DugsiAttendanceSessionID,
			AttendanceRecordStudentID: m.StudentID,
			AttendanceRecordStatus:    m.Status,
			AttendanceRecordNote:      m.Note,
			AttendanceRecordMarkedBy:  &userID,
		})
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_session_id"},
				{Name: "attendance_record_student_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_note",
				"attendance_record_marked_by",
				"attendance_record_updated_at",
			}),
		}).Create(&rows).Error; err != nil {
			return err
		}
		if session.DugsiAttendanceSessionStatus == model.SessionStatusScheduled {
			session.DugsiAttendanceSessionStatus = model.SessionStatusOngoing
			return tx.Save(session).Error
		}
		return nil
	})
	if txErr != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save marks")
	}

	return helper.Success(c, "Marks saved", fiber.Map{
		"session_id": session.DugsiAttendanceSessionID,
		"saved":      len(rows),
	})
}

// POST /api/t/attendance/sessions/:id/close
// Closing is allowed for sessions dated in the current week or earlier;
// counts are recomputed from the records inside the transaction.
func (ctl *SessionController) Close(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	loc, err := ctl.schoolLocation(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to resolve school timezone")
	}

	session, err := ctl.findSession(c.Params("id"), schoolID)
	if err != nil {
		return sessionLookupError(c, err)
	}

	if err := CloseSession(ctl.DB, session, time.Now(), loc); err != nil {
		switch {
		case errors.Is(err, errSessionClosed):
			return helper.Error(c, fiber.StatusConflict, "Attendance on this session is already closed")
		case errors.Is(err, errSessionCanceled):
			return helper.Error(c, fiber.StatusConflict, "Session is canceled")
		case errors.Is(err, errNotClosableYet):
			return helper.Error(c, fiber.StatusConflict, "Session date is in a future week")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to close session")
		}
	}

	return helper.Success(c, "Session closed", dto.ToSessionResponse(session))
}

// POST /api/a/attendance/sessions/:id/cancel
func (ctl *SessionController) Cancel(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	session, err := ctl.findSession(c.Params("id"), schoolID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.DugsiAttendanceSessionStatus == model.SessionStatusCompleted {
		return helper.Error(c, fiber.StatusConflict, "Completed sessions cannot be canceled")
	}

	session.DugsiAttendanceSessionStatus = model.SessionStatusCanceled
	session.DugsiAttendanceSessionAttendanceStatus = model.AttendanceStatusClosed
	if err := ctl.DB.Save(session).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to cancel session")
	}
	return helper.Success(c, "Session canceled", dto.ToSessionResponse(session))
}

// GET /api/t/attendance/today
// Sessions dated today (school timezone) for the logged-in teacher.
func (ctl *SessionController) Today(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	loc, err := ctl.schoolLocation(schoolID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to resolve school timezone")
	}
	today := time.Now().In(loc).Format("2006-01-02")

	var rows []model.DugsiAttendanceSessionModel
	if err := ctl.DB.
		Joins(`LEFT JOIN teachers
		       ON teachers.teacher_id = dugsi_attendance_sessions.dugsi_attendance_session_teacher_id`).
		Where(`dugsi_attendance_session_school_id = ?
		       AND dugsi_attendance_session_date = ?
		       AND dugsi_attendance_session_status <> ?
		       AND (teachers.teacher_user_id = ? OR dugsi_attendance_session_teacher_id IS NULL)`,
			schoolID, today, model.SessionStatusCanceled, userID).
		Order("dugsi_attendance_session_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list today's sessions")
	}

	out := make([]dto.SessionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToSessionResponse(&rows[i]))
	}
	return helper.Success(c, "OK", out)
}

// CloseSession flips the session to closed/completed and recomputes the
// counts from its records. Shared with the auto-close sweep.
func CloseSession(db *gorm.DB, session *model.DugsiAttendanceSessionModel, now time.Time, loc *time.Location) error {
	if session.DugsiAttendanceSessionStatus == model.SessionStatusCanceled {
		return errSessionCanceled
	}
	if !session.IsOpen() {
		return errSessionClosed
	}
	if !service.Closable(session.DugsiAttendanceSessionDate, now, loc) {
		return errNotClosableYet
	}

	return db.Transaction(func(tx *gorm.DB) error {
		type countRow struct {
			Status string
			N      int
		}
		var counts []countRow
		if err := tx.Model(&model.AttendanceRecordModel{}).
			Select("attendance_record_status AS status, COUNT(*) AS n").
			Where("attendance_record_session_id = ?", session.DugsiAttendanceSessionID).
			Group("attendance_record_status").
			Scan(&counts).Error; err != nil {
			return err
		}

		session.DugsiAttendanceSessionPresentCount = 0
		session.DugsiAttendanceSessionAbsentCount = 0
		session.DugsiAttendanceSessionLateCount = 0
		session.DugsiAttendanceSessionExcusedCount = 0
		for _, row := range counts {
			switch row.Status {
			case model.AttendanceRecordPresent:
				session.DugsiAttendanceSessionPresentCount = row.N
			case model.AttendanceRecordAbsent:
				session.DugsiAttendanceSessionAbsentCount = row.N
			case model.AttendanceRecordLate:
				session.DugsiAttendanceSessionLateCount = row.N
			case model.AttendanceRecordExcused:
				session.DugsiAttendanceSessionExcusedCount = row.N
			}
		}

		closedAt := now
		session.DugsiAttendanceSessionAttendanceStatus = model.AttendanceStatusClosed
		session.DugsiAttendanceSessionStatus = model.SessionStatusCompleted
		session.DugsiAttendanceSessionClosedAt = &closedAt
		return tx.Save(session).Error
	})
}

func (ctl *SessionController) findSession(idParam string, schoolID uuid.UUID) (*model.DugsiAttendanceSessionModel, error) {
	var session model.DugsiAttendanceSessionModel
	err := ctl.DB.
		Where("dugsi_attendance_session_id = ? AND dugsi_attendance_session_school_id = ?", idParam, schoolID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func sessionLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Session not found")
	}
	return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
}

func (ctl *SessionController) schoolLocation(schoolID uuid.UUID) (*time.Location, error) {
	var school schoolmodel.SchoolModel
	if err := ctl.DB.First(&school, "school_id = ?", schoolID).Error; err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(school.SchoolTimezone)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}
