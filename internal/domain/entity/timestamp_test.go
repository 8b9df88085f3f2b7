package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"rfc3339", `"2024-05-01T10:00:00Z"`, true},
		{"rfc3339 with offset", `"2024-05-01T13:00:00+03:00"`, true},
		{"epoch seconds", `1714557600`, true},
		{"epoch millis", `1714557600000`, true},
		{"epoch millis string", `"1714557600000"`, true},
		{"null", `null`, false},
		{"empty string", `""`, false},
		{"garbage string", `"yesterday"`, false},
		{"negative", `-5`, false},
		{"bool", `true`, false},
		{"object", `{"at":1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			got, ok := ts.Time()
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.True(t, want.Equal(got), "got %s", got)
			} else {
				assert.Nil(t, ts.Ptr())
			}
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		At      Timestamp `json:"at"`
		Missing Timestamp `json:"missing"`
	}{At: TimestampFrom(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-01T10:00:00Z","missing":null}`, string(out))
}

func TestTokenHolding_BadTimestampKeepsHolding(t *testing.T) {
	var holdings []TokenHolding
	raw := `[{"symbol":"USDC","valueUsd":"1","lastUpdated":""},{"symbol":"SOL","valueUsd":"2","lastUpdated":[1]}]`

	require.NoError(t, json.Unmarshal([]byte(raw), &holdings))

	require.Len(t, holdings, 2)
	assert.False(t, holdings[0].LastUpdated.Valid())
	assert.False(t, holdings[1].LastUpdated.Valid())
	assert.Equal(t, "2", holdings[1].ValueUSD.String())
}
