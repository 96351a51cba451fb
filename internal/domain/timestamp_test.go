package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "rfc3339",
			payload:  `"2024-05-01T12:30:00Z"`,
			expected: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "legacy space-separated layout",
			payload:  `"2024-05-01 12:30:00"`,
			expected: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "epoch milliseconds",
			payload:  `1714566600000`,
			expected: time.UnixMilli(1714566600000).UTC(),
		},
		{
			name:     "null leaves zero time",
			payload:  `null`,
			expected: time.Time{},
		},
		{
			name:     "empty string leaves zero time",
			payload:  `""`,
			expected: time.Time{},
		},
		{
			name:    "garbage is rejected",
			payload: `"yesterday-ish"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.payload), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(ts.Time), "got %v, want %v", ts.Time, tt.expected)
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T12:30:00Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}
