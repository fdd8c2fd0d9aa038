package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockRecord_UnmarshalOpenInt(t *testing.T) {
	var r StockRecord
	err := json.Unmarshal([]byte(`{"date":"2024-01-01T00:00:00.000Z","open":10.25,"high":12,"low":9,"close":11,"volume":100,"openInt":7}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "10.25", r.Open.String())
	assert.Equal(t, "100", r.Volume.String())
	assert.Equal(t, "7", r.OpenInterest.String())
	assert.Equal(t, "2024-01-01", r.DisplayDate())
}

func TestStockRecord_UnmarshalOpenInterestWins(t *testing.T) {
	var r StockRecord
	err := json.Unmarshal([]byte(`{"date":"2024-01-01","openInt":1,"openInterest":2}`), &r)
	require.NoError(t, err)
	assert.Equal(t, "2", r.OpenInterest.String())
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024-01-01"},
		{"2024-01-01T23:30:00Z", "2024-01-01"},
		{"2024-01-01T23:30:00-02:00", "2024-01-02"},
		{"2017-11-10T00:00:00.000Z", "2017-11-10"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestUser_UnmarshalIDVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string id", `{"id":"abc"}`, "abc"},
		{"numeric id", `{"id":42}`, "42"},
		{"mongo id", `{"_id":"64f0"}`, "64f0"},
		{"none", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.want, u.ID)
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestSummaryStats_Labels(t *testing.T) {
	s := SummaryStats{}
	assert.Equal(t, "N/A", s.LastUploadLabel())
	assert.Equal(t, "Unknown", s.ValidityLabel())
	assert.False(t, s.IsValid())

	s = SummaryStats{LastUploadDate: "2024-10-28", DataValidity: "Valid"}
	assert.Equal(t, "2024-10-28", s.LastUploadLabel())
	assert.True(t, s.IsValid())
}
