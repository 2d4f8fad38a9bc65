package intake

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/internal/chatmodeltest"
)

func runAssistant(t *testing.T, ctx context.Context, a *Assistant, text string) *adk.AgentEvent {
	t.Helper()
	iter := a.Run(ctx, &adk.AgentInput{Messages: []adk.Message{schema.UserMessage(text)}})
	event, ok := iter.Next()
	require.True(t, ok)
	_, more := iter.Next()
	assert.False(t, more)
	return event
}

func TestAssistantAppliesToolCalls(t *testing.T) {
	st := NewStore(StoreConfig{})
	defer st.Close()
	s := st.Create()
	ctx := WithSessionID(context.Background(), s.ID())

	m := chatmodeltest.New(
		chatmodeltest.ToolCall(ToolSelectSymptom, `{"key":"Leaking water"}`),
		chatmodeltest.ToolCall(ToolCarryToForm, `{}`),
		&schema.Message{Role: schema.Assistant, Content: "Got it. What's the address?"},
	)
	a, err := NewAssistant(ctx, m, st)
	require.NoError(t, err)

	event := runAssistant(t, ctx, a, "water is dripping from my AC")
	require.NoError(t, event.Err)
	assert.Equal(t, "Got it. What's the address?", event.Output.MessageOutput.Message.Content)

	f := s.Form()
	assert.Equal(t, form.NeedRepair, f.Need)
	assert.Equal(t, "Leaking water", f.Symptom)
	assert.Equal(t, 3, m.CallCount())
	assert.Contains(t, m.LastPrompt(), `"ok":true`)
}

func TestAssistantStopsAfterMaxSteps(t *testing.T) {
	st := NewStore(StoreConfig{})
	defer st.Close()
	s := st.Create()
	ctx := WithSessionID(context.Background(), s.ID())

	m := chatmodeltest.New(
		chatmodeltest.ToolCall(ToolGetState, `{}`),
		chatmodeltest.ToolCall(ToolGetState, `{}`),
	)
	a, err := NewAssistant(ctx, m, st, WithMaxSteps(2))
	require.NoError(t, err)

	event := runAssistant(t, ctx, a, "hi")
	require.ErrorIs(t, event.Err, ErrTooManySteps)
}

func TestAssistantRejectsEmptyInput(t *testing.T) {
	st := NewStore(StoreConfig{})
	defer st.Close()
	a, err := NewAssistant(context.Background(), chatmodeltest.New(), st)
	require.NoError(t, err)

	iter := a.Run(context.Background(), &adk.AgentInput{})
	event, ok := iter.Next()
	require.True(t, ok)
	require.Error(t, event.Err)
}
