package triage

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeflow/structured"
	"github.com/tbxark/intakeflow/types"
	"go.uber.org/zap"
)

const (
	recognizeToolName        = "pick_symptom"
	recognizeToolDescription = "Pick the symptom option that best matches the visitor's description of their AC problem."
)

// DefaultRecognizeSystemPrompt may contain a single "%s" placeholder for the tool name.
const DefaultRecognizeSystemPrompt = `You help a local AC repair business triage incoming requests.

Read the visitor's description and pick exactly one symptom key from the options table.
Only answer with a key that appears in the table, copied exactly.
If nothing fits, answer with the key for "not sure" when the table has one, otherwise an empty key.

Call the '%s' tool with the result.`

type recognizeOutput struct {
	Key string `json:"key" jsonschema:"required,description=Symptom key copied exactly from the options table"`
}

type recognizerOptions struct {
	systemPrompt string
	logger       *zap.Logger
}

type RecognizerOption func(*recognizerOptions)

func WithRecognizeSystemPrompt(prompt string) RecognizerOption {
	return func(o *recognizerOptions) {
		o.systemPrompt = prompt
	}
}

func WithRecognizerLogger(l *zap.Logger) RecognizerOption {
	return func(o *recognizerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// ToolBasedRecognizer lets a chat model pick the option through a forced tool call.
type ToolBasedRecognizer struct {
	chain  *structured.Chain[*Request, recognizeOutput]
	logger *zap.Logger
}

func NewToolBasedRecognizer(chatModel model.ToolCallingChatModel, opts ...RecognizerOption) (*ToolBasedRecognizer, error) {
	o := recognizerOptions{
		systemPrompt: DefaultRecognizeSystemPrompt,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	chain, err := structured.NewChain[*Request, recognizeOutput](
		chatModel,
		buildRecognizePrompt(fmt.Sprintf(o.systemPrompt, recognizeToolName)),
		recognizeToolName,
		recognizeToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedRecognizer{chain: chain, logger: o.logger}, nil
}

func (p *ToolBasedRecognizer) Recognize(ctx context.Context, req *Request) (string, error) {
	result, err := p.chain.Invoke(ctx, req)
	if err != nil {
		p.logger.Warn("symptom recognition failed", zap.Error(err))
		return "", err
	}
	if result == nil || !validKey(result.Key, req.Options) {
		p.logger.Debug("model picked unknown symptom", zap.Any("result", result))
		return "", ErrNoMatch
	}
	return result.Key, nil
}

func buildRecognizePrompt(systemPrompt string) structured.PromptBuilder[*Request] {
	return func(ctx context.Context, req *Request) ([]*schema.Message, error) {
		rows := make([][]string, 0, len(req.Options))
		for _, opt := range req.Options {
			rows = append(rows, []string{opt.Key, opt.Label})
		}
		table := types.FormatTable("Symptom options", []string{"Key", "Label"}, rows)
		user := fmt.Sprintf("%s\n# Visitor description:\n%s", table, req.Text)
		return []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(user),
		}, nil
	}
}
