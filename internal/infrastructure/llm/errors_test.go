package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hookline-ai-api/pkg/errors"
)

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"rate limit", fmt.Errorf("429: Rate limit reached for requests"), errors.CodeLLMQuotaExceeded},
		{"quota", fmt.Errorf("you exceeded your current quota"), errors.CodeLLMQuotaExceeded},
		{"bad key", fmt.Errorf("Incorrect API key provided"), errors.CodeLLMAuthError},
		{"unauthorized", fmt.Errorf("401 Unauthorized"), errors.CodeLLMAuthError},
		{"refused", fmt.Errorf("dial tcp 10.0.0.1:443: connection refused"), errors.CodeLLMNetworkError},
		{"dns", fmt.Errorf("lookup api.example.com: no such host"), errors.CodeLLMNetworkError},
		{"deadline", context.DeadlineExceeded, errors.CodeLLMNetworkError},
		{"other", fmt.Errorf("model overloaded, please retry"), errors.CodeLLMProviderError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := ClassifyProviderError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestClassifyProviderErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyProviderError(nil))
}

func TestClassifyProviderErrorKeepsAppError(t *testing.T) {
	orig := errors.New(errors.CodeEmbeddingFailed, "embedding call failed")
	assert.Same(t, orig, ClassifyProviderError(orig))
}
