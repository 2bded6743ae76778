package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut)

	l.Info("built %d records", 6)
	l.Warn("duplicate id %s", "42")
	l.Error("export failed: %v", "disk full")

	assert.Contains(t, out.String(), "INFO")
	assert.Contains(t, out.String(), "built 6 records")
	assert.Contains(t, out.String(), "duplicate id 42")
	assert.NotContains(t, out.String(), "export failed")
	assert.Contains(t, errOut.String(), "export failed: disk full")
}
