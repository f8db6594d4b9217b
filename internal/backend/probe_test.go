package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSelectFallsBackToScripted(t *testing.T) {
	sel := Select(context.Background(), SelectConfig{
		ChatModel: nil,
		Binary:    "no-such-generation-binary",
		Seed:      42,
	}, zap.NewNop())

	assert.Equal(t, MethodScripted, sel.Method())
}
