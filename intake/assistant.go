package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

var _ adk.Agent = (*Assistant)(nil)

var ErrTooManySteps = errors.New("assistant exceeded tool call rounds")

const DefaultAssistantInstruction = `You are the front desk of a local AC repair business.

Help the visitor describe their problem and book a service visit:
- Use select_symptom to record the symptom, then carry_to_form to copy it into the request.
- Ask for the address, preferred time window, contact name and mobile number, and record each with set_field.
- Never invent values. Only record what the visitor said, verbatim.
- The visitor must agree to receive texts before submit_request; ask them explicitly.
- Use get_state when unsure what is still missing.

Keep answers short and friendly.`

const defaultMaxSteps = 8

type assistantOptions struct {
	name        string
	description string
	instruction string
	maxSteps    int
	logger      *zap.Logger
}

type AssistantOption func(*assistantOptions)

func WithAssistantInstruction(instruction string) AssistantOption {
	return func(o *assistantOptions) {
		if instruction != "" {
			o.instruction = instruction
		}
	}
}

// WithMaxSteps bounds how many model rounds one user turn may take.
func WithMaxSteps(n int) AssistantOption {
	return func(o *assistantOptions) {
		if n > 0 {
			o.maxSteps = n
		}
	}
}

func WithAssistantLogger(l *zap.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Assistant is a conversational agent that fills the intake session named in
// the run context through the intake tools.
type Assistant struct {
	opts      assistantOptions
	chatModel model.ToolCallingChatModel
	tools     map[string]tool.InvokableTool
}

func NewAssistant(ctx context.Context, chatModel model.ToolCallingChatModel, store *Store, opts ...AssistantOption) (*Assistant, error) {
	o := assistantOptions{
		name:        "IntakeAssistant",
		description: "Helps visitors triage an AC problem and submit a service request",
		instruction: DefaultAssistantInstruction,
		maxSteps:    defaultMaxSteps,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	tools, err := NewTools(store)
	if err != nil {
		return nil, err
	}
	infos := make([]*schema.ToolInfo, 0, len(tools))
	byName := make(map[string]tool.InvokableTool, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}
		infos = append(infos, info)
		byName[info.Name] = t
	}
	bound, err := chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}
	return &Assistant{opts: o, chatModel: bound, tools: byName}, nil
}

func (a *Assistant) Name(ctx context.Context) string {
	return a.opts.name
}

func (a *Assistant) Description(ctx context.Context) string {
	return a.opts.description
}

func (a *Assistant) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			if e := recover(); e != nil {
				gen.Send(&adk.AgentEvent{Err: fmt.Errorf("recover from panic: %v", e)})
			}
			gen.Close()
		}()
		if len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{Err: errors.New("no messages in input")})
			return
		}
		msg, err := a.reply(ctx, input.Messages)
		if err != nil {
			gen.Send(&adk.AgentEvent{Err: err})
			return
		}
		gen.Send(&adk.AgentEvent{
			AgentName: a.opts.name,
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					Message: msg,
					Role:    schema.Assistant,
				},
			},
		})
	}()
	return iter
}

func (a *Assistant) reply(ctx context.Context, history []adk.Message) (*schema.Message, error) {
	messages := make([]*schema.Message, 0, len(history)+1)
	messages = append(messages, schema.SystemMessage(a.opts.instruction))
	messages = append(messages, history...)

	for step := 0; step < a.opts.maxSteps; step++ {
		resp, err := a.chatModel.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("LLM call failed: %w", err)
		}
		if len(resp.ToolCalls) == 0 {
			return resp, nil
		}
		messages = append(messages, resp)
		for _, call := range resp.ToolCalls {
			messages = append(messages, schema.ToolMessage(a.invoke(ctx, call), call.ID))
		}
	}
	return nil, ErrTooManySteps
}

func (a *Assistant) invoke(ctx context.Context, call schema.ToolCall) string {
	t, ok := a.tools[call.Function.Name]
	if !ok {
		return fmt.Sprintf("unknown tool %q", call.Function.Name)
	}
	out, err := t.InvokableRun(ctx, call.Function.Arguments)
	if err != nil {
		a.opts.logger.Warn("tool call failed", zap.String("tool", call.Function.Name), zap.Error(err))
		return "error: " + err.Error()
	}
	a.opts.logger.Debug("tool call", zap.String("tool", call.Function.Name))
	return out
}
