package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRecordStatus(t *testing.T) {
	for _, s := range []string{
		AttendanceRecordPresent,
		AttendanceRecordAbsent,
		AttendanceRecordLate,
		AttendanceRecordExcused,
	} {
		assert.True(t, ValidRecordStatus(s), s)
	}
	for _, s := range []string{"", "PRESENT", "sick", "tardy"} {
		assert.False(t, ValidRecordStatus(s), s)
	}
}
