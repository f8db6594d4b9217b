package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	lastInput []*schema.Message
	lastOpts  *model.Options
	reply     string
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.lastInput = input
	f.lastOpts = model.GetCommonOptions(&model.Options{}, opts...)
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (f *fakeChatModel) BindTools([]*schema.ToolInfo) error { return nil }

func TestLiveGenerateThroughChain(t *testing.T) {
	fake := &fakeChatModel{reply: "  measured legal take  "}
	live, err := NewLive(context.Background(), fake)
	require.NoError(t, err)
	assert.Equal(t, MethodLive, live.Method())

	out, err := live.Generate(context.Background(), Request{
		PersonaID: "Legal-AI",
		Model:     "doubao-pro",
		Prompt:    "You are Legal-AI. Stay cautious.",
		Query:     "can we scrape pricing?",
		Options:   DefaultOptions(0.3),
	})
	require.NoError(t, err)
	assert.Equal(t, "measured legal take", out)

	// The chain renders instruction block as system message and the
	// bare query as user message.
	require.Len(t, fake.lastInput, 2)
	assert.Equal(t, schema.System, fake.lastInput[0].Role)
	assert.Equal(t, "You are Legal-AI. Stay cautious.", fake.lastInput[0].Content)
	assert.Equal(t, schema.User, fake.lastInput[1].Role)
	assert.Equal(t, "can we scrape pricing?", fake.lastInput[1].Content)

	// Per-call sampling options reach the model through the chain.
	require.NotNil(t, fake.lastOpts)
	require.NotNil(t, fake.lastOpts.Temperature)
	assert.InDelta(t, 0.3, float64(*fake.lastOpts.Temperature), 1e-6)
	require.NotNil(t, fake.lastOpts.Model)
	assert.Equal(t, "doubao-pro", *fake.lastOpts.Model)
	require.NotNil(t, fake.lastOpts.MaxTokens)
	assert.Equal(t, 300, *fake.lastOpts.MaxTokens)
}

func TestLiveProbePingsModel(t *testing.T) {
	fake := &fakeChatModel{reply: "pong"}
	live, err := NewLive(context.Background(), fake)
	require.NoError(t, err)

	require.NoError(t, live.Probe(context.Background()))
	require.Len(t, fake.lastInput, 1)
	assert.Equal(t, "ping", fake.lastInput[0].Content)
}
