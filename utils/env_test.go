package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvVarWithDefault(t *testing.T) {
	t.Setenv("POSTSAPI_TEST_SET", "value")
	t.Setenv("POSTSAPI_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnvVarWithDefault("POSTSAPI_TEST_SET", "default"))
	assert.Equal(t, "default", GetEnvVarWithDefault("POSTSAPI_TEST_EMPTY", "default"))
	assert.Equal(t, "default", GetEnvVarWithDefault("POSTSAPI_TEST_UNSET", "default"))
}
