package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenCents(t *testing.T) {
	cases := []struct {
		name  string
		total int
		n     int
		want  []int
	}{
		{"divides evenly", 9000, 3, []int{3000, 3000, 3000}},
		{"remainder to last", 10000, 3, []int{3333, 3333, 3334}},
		{"single slot", 7500, 1, []int{7500}},
		{"remainder one cent", 101, 2, []int{50, 51}},
		{"more slots than cents", 2, 3, []int{0, 0, 2}},
		{"zero total", 0, 4, []int{0, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitEvenCents(tc.total, tc.n)
			require.Equal(t, tc.want, got)

			sum := 0
			for _, v := range got {
				sum += v
			}
			assert.Equal(t, tc.total, sum)
		})
	}
}

func TestSplitEvenCentsInvalidN(t *testing.T) {
	assert.Nil(t, SplitEvenCents(1000, 0))
	assert.Nil(t, SplitEvenCents(1000, -2))
}
