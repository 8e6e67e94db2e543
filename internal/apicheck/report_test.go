package apicheck

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAllPassed(t *testing.T) {
	r := &Report{}
	assert.False(t, r.AllPassed(), "empty report must not count as success")

	r.Add("a", true, "ok", nil)
	r.Add("b", true, "ok", nil)
	assert.True(t, r.AllPassed())
	assert.Equal(t, 2, r.Passed())

	r.Add("c", false, "boom", nil)
	assert.False(t, r.AllPassed())
	assert.Equal(t, 2, r.Passed())
}

func TestReportWriteFile(t *testing.T) {
	r := &Report{BaseURL: "http://localhost:8080/api", Destructive: true}
	r.Add("Health", true, "health endpoint responded 200", nil)
	r.Add("Admin Login", false, "HTTP 401", map[string]int{"status": 401})

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "http://localhost:8080/api", decoded.BaseURL)
	assert.True(t, decoded.Destructive)
	assert.NotEmpty(t, decoded.Timestamp)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "Health", decoded.Results[0].Test)
	assert.True(t, decoded.Results[0].Success)
	assert.False(t, decoded.Results[1].Success)
	assert.NotEmpty(t, decoded.Results[1].Timestamp)
}
