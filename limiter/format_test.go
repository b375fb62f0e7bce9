package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWaitTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "0 seconds"},
		{seconds: 1, want: "1 second"},
		{seconds: 45, want: "45 seconds"},
		{seconds: 59, want: "59 seconds"},
		{seconds: 60, want: "1 minute"},
		{seconds: 61, want: "2 minutes"},
		{seconds: 90, want: "2 minutes"},
		{seconds: 120, want: "2 minutes"},
		{seconds: 300, want: "5 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWaitTime(tt.seconds))
		})
	}
}
