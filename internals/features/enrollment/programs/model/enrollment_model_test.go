package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to EnrollmentStatus }{
		{EnrollmentPending, EnrollmentActive},
		{EnrollmentPending, EnrollmentWithdrawn},
		{EnrollmentActive, EnrollmentCompleted},
		{EnrollmentActive, EnrollmentWithdrawn},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to EnrollmentStatus }{
		{EnrollmentPending, EnrollmentCompleted},
		{EnrollmentPending, EnrollmentPending},
		{EnrollmentActive, EnrollmentPending},
		{EnrollmentCompleted, EnrollmentActive},
		{EnrollmentCompleted, EnrollmentWithdrawn},
		{EnrollmentWithdrawn, EnrollmentActive},
		{EnrollmentWithdrawn, EnrollmentPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyTransitionStampsTimestamps(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	e := EnrollmentModel{EnrollmentStatus: EnrollmentPending}
	e.ApplyTransition(EnrollmentActive, at)
	assert.Equal(t, EnrollmentActive, e.EnrollmentStatus)
	if assert.NotNil(t, e.EnrollmentActivatedAt) {
		assert.Equal(t, at, *e.EnrollmentActivatedAt)
	}
	assert.Nil(t, e.EnrollmentCompletedAt)

	e.ApplyTransition(EnrollmentCompleted, at.Add(time.Hour))
	assert.Equal(t, EnrollmentCompleted, e.EnrollmentStatus)
	if assert.NotNil(t, e.EnrollmentCompletedAt) {
		assert.Equal(t, at.Add(time.Hour), *e.EnrollmentCompletedAt)
	}

	w := EnrollmentModel{EnrollmentStatus: EnrollmentPending}
	w.ApplyTransition(EnrollmentWithdrawn, at)
	if assert.NotNil(t, w.EnrollmentWithdrawnAt) {
		assert.Equal(t, at, *w.EnrollmentWithdrawnAt)
	}
}
