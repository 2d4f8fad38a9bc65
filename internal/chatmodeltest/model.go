// Package chatmodeltest provides a scripted chat model for tests.
package chatmodeltest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var _ model.ToolCallingChatModel = (*Model)(nil)

// Model replays Responses in order and records every prompt it receives.
type Model struct {
	mu        sync.Mutex
	Responses []*schema.Message
	Err       error
	Calls     [][]*schema.Message
}

func New(responses ...*schema.Message) *Model {
	return &Model{Responses: responses}
}

// ToolCall builds an assistant message carrying one tool call.
func ToolCall(name, arguments string) *schema.Message {
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			ID:       "call_0",
			Type:     "function",
			Function: schema.FunctionCall{Name: name, Arguments: arguments},
		}},
	}
}

func (m *Model) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, input)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return resp, nil
}

func (m *Model) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *Model) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func (m *Model) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt concatenates the contents of the most recent prompt.
func (m *Model) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	var out string
	for _, msg := range m.Calls[len(m.Calls)-1] {
		out += msg.Content + "\n"
	}
	return out
}
