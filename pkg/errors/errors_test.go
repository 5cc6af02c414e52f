package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStringIncludesDetail(t *testing.T) {
	err := New(CodeInvalidParam, "unknown scoring mode").
		WithDetailf("expected one of random, semantic, received %q", "turbo")

	msg := err.Error()
	assert.Contains(t, msg, string(CodeInvalidParam))
	assert.Contains(t, msg, "unknown scoring mode")
	// 期望值/实际值不能在日志与落库的消息中丢失
	assert.Contains(t, msg, "random, semantic")
	assert.Contains(t, msg, `"turbo"`)
}

func TestErrorStringWithWrappedError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeEmbeddingFailed, "embedding provider call failed").
		WithDetail("expected a vector payload, received transport failure")

	msg := err.Error()
	assert.Contains(t, msg, "embedding provider call failed")
	assert.Contains(t, msg, "expected a vector payload")
	assert.Contains(t, msg, "connection refused")
	assert.Equal(t, cause, err.Unwrap())
}

func TestErrorStringWithoutDetail(t *testing.T) {
	err := New(CodeJobNotFound, "generation job not found")
	assert.Equal(t, "[3007] generation job not found", err.Error())
}

func TestCodeToHTTPStatus(t *testing.T) {
	require.Equal(t, 400, New(CodeInvalidParam, "m").HTTPStatus)
	require.Equal(t, 404, New(CodeJobNotFound, "m").HTTPStatus)
	require.Equal(t, 503, New(CodeServiceUnavailable, "m").HTTPStatus)
}
