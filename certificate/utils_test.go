package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateWithOrdinal(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "1st January 2025"},
		{2, "2nd January 2025"},
		{3, "3rd January 2025"},
		{4, "4th January 2025"},
		{11, "11th January 2025"},
		{12, "12th January 2025"},
		{13, "13th January 2025"},
		{21, "21st January 2025"},
		{22, "22nd January 2025"},
		{23, "23rd January 2025"},
		{31, "31st January 2025"},
	}
	for _, tc := range cases {
		d := time.Date(2025, time.January, tc.day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, formatDateWithOrdinal(d))
	}
}

func TestFormatDateWithOrdinalStripsLeadingZero(t *testing.T) {
	d := time.Date(2025, time.October, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "26th October 2025", formatDateWithOrdinal(d))

	d = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5th March 2025", formatDateWithOrdinal(d))
}
