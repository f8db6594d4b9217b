package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// Live generates through a compiled chain: instruction template feeding
// an in-process chat model client.
type Live struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewLive compiles the generation chain over an already constructed
// chat model.
func NewLive(ctx context.Context, chatModel model.ChatModel) (*Live, error) {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile generation chain: %w", err)
	}

	return &Live{chatModel: chatModel, chain: runnable}, nil
}

// Method implements Generator.
func (l *Live) Method() Method { return MethodLive }

// Generate implements Generator. The assembled instruction block rides
// as the system message and the bare query as the user message;
// sampling options are applied per call so each persona keeps its own
// temperature.
func (l *Live) Generate(ctx context.Context, req Request) (string, error) {
	opts := []model.Option{
		model.WithTemperature(float32(req.Options.Temperature)),
		model.WithTopP(float32(req.Options.TopP)),
	}
	if req.Options.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.Options.MaxTokens))
	}
	if req.Model != "" {
		opts = append(opts, model.WithModel(req.Model))
	}

	response, err := l.chain.Invoke(ctx, map[string]any{
		"system": req.Prompt,
		"query":  req.Query,
	}, compose.WithChatModelOption(opts...))
	if err != nil {
		return "", fmt.Errorf("live generation failed: %w", err)
	}
	return strings.TrimSpace(response.Content), nil
}

// Probe performs a lightweight liveness call with a short deadline,
// directly against the model so template machinery stays out of it.
func (l *Live) Probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := l.chatModel.Generate(probeCtx,
		[]*schema.Message{schema.UserMessage("ping")},
		model.WithMaxTokens(1))
	return err
}
