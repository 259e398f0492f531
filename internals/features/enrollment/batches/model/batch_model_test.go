package model

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMeetsOn(t *testing.T) {
	weekend := BatchModel{BatchWeekdays: pq.Int64Array{0, 6}}
	assert.True(t, weekend.MeetsOn(time.Sunday))
	assert.True(t, weekend.MeetsOn(time.Saturday))
	assert.False(t, weekend.MeetsOn(time.Wednesday))

	none := BatchModel{}
	assert.False(t, none.MeetsOn(time.Sunday))
}
