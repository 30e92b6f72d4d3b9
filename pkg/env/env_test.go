package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPrefersPrefixedKey(t *testing.T) {
	t.Setenv("LOG_FORMAT", "console")
	assert.Equal(t, "console", Get("LOG_FORMAT", "json"))

	t.Setenv("FLOW_LOG_FORMAT", "json")
	assert.Equal(t, "json", Get("LOG_FORMAT", "text"))
}

func TestGetFallsBack(t *testing.T) {
	t.Setenv("FLOW_PORT", "  ")
	t.Setenv("PORT", "")
	assert.Equal(t, "8080", Get("PORT", "8080"))
	assert.Equal(t, "x", Get("FLOW_UNSET_FOR_TEST", "x"))
}
