package utils_test

import (
	"testing"

	"hubsync/internal/shared/utils"

	"github.com/stretchr/testify/assert"
)

func TestStripNilValues(t *testing.T) {
	in := map[string]interface{}{
		"meeting_title":   "Quarterly review",
		"meeting_outcome": nil,
		"attendees":       []string{"a@example.com"},
		"meeting_end":     "",
	}

	out := utils.StripNilValues(in)

	assert.Equal(t, map[string]interface{}{
		"meeting_title": "Quarterly review",
		"attendees":     []string{"a@example.com"},
		"meeting_end":   "",
	}, out)

	// Input is left untouched
	assert.Contains(t, in, "meeting_outcome")
}

func TestStripNilValuesIdempotent(t *testing.T) {
	in := map[string]interface{}{
		"a": "1",
		"b": nil,
	}

	once := utils.StripNilValues(in)
	twice := utils.StripNilValues(once)

	assert.Equal(t, once, twice)
}

func TestStripNilValuesNil(t *testing.T) {
	assert.Nil(t, utils.StripNilValues(nil))
}
