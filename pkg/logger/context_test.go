package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContextRoundTrip(t *testing.T) {
	base := zap.NewNop().With(zap.String("request_id", "abc"))

	ctx := WithContext(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	// A bare context falls back to the global logger; callers never get nil.
	assert.NotNil(t, FromContext(context.Background()))
}
