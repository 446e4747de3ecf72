package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TAKAPAY_TEST_STR", "value")
	assert.Equal(t, "value", GetEnv("TAKAPAY_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TAKAPAY_TEST_UNSET", "fallback"))

	t.Setenv("TAKAPAY_TEST_EMPTY", "")
	assert.Equal(t, "fallback", GetEnv("TAKAPAY_TEST_EMPTY", "fallback"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("TAKAPAY_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("TAKAPAY_TEST_INT", 7))

	t.Setenv("TAKAPAY_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetIntEnv("TAKAPAY_TEST_INT", 7))

	assert.Equal(t, 7, GetIntEnv("TAKAPAY_TEST_INT_UNSET", 7))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TAKAPAY_TEST_DUR", "45m")
	assert.Equal(t, 45*time.Minute, GetDurationEnv("TAKAPAY_TEST_DUR", time.Hour))

	t.Setenv("TAKAPAY_TEST_DUR", "soon")
	assert.Equal(t, time.Hour, GetDurationEnv("TAKAPAY_TEST_DUR", time.Hour))

	assert.Equal(t, time.Hour, GetDurationEnv("TAKAPAY_TEST_DUR_UNSET", time.Hour))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "development")
	assert.False(t, IsProduction())
}
