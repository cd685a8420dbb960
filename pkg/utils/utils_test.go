package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:                  "0s",
		42 * time.Second:              "42s",
		5*time.Minute + 3*time.Second: "5m 3s",
		time.Hour + 5*time.Minute:     "1h 5m",
		51*time.Hour + 10*time.Minute: "2d 3h",
		1500 * time.Millisecond:       "1s",
	}
	for d, want := range cases {
		assert.Equal(t, want, FormatDuration(d), d.String())
	}
}
