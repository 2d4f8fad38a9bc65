package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/intakeflow/catalog"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/internal/chatmodeltest"
)

func TestClassify(t *testing.T) {
	cases := map[string]form.Need{
		"":                                 "",
		"Maintenance":                      form.NeedMaintenance,
		"Routine maintenance":              form.NeedMaintenance,
		"ANNUAL MAINTENANCE":               form.NeedMaintenance,
		"New install":                      form.NeedNewInstall,
		"Reinstall bracket":                form.NeedNewInstall,
		"Maintenance after install":        form.NeedMaintenance,
		"No cooling":                       form.NeedRepair,
		"Leaking water":                    form.NeedRepair,
		"Won’t turn on / tripping breaker": form.NeedRepair,
		"Other / Not sure":                 form.NeedRepair,
	}
	for key, want := range cases {
		assert.Equal(t, want, Classify(key), "key %q", key)
	}
}

func TestCarryOverForKeepsRawKey(t *testing.T) {
	c, ok := CarryOverFor("Routine maintenance")
	require.True(t, ok)
	assert.Equal(t, form.CarryOver{Need: form.NeedMaintenance, Symptom: "Routine maintenance"}, c)

	_, ok = CarryOverFor("")
	assert.False(t, ok)
}

func TestSelectorReplacesSelection(t *testing.T) {
	s := NewSelector(catalog.Default())
	_, ok := s.CarryOver()
	assert.False(t, ok)

	require.NoError(t, s.Select("No cooling"))
	require.NoError(t, s.Select("New install"))
	require.NoError(t, s.Select("New install"))
	assert.Equal(t, "New install", s.Selected())

	c, ok := s.CarryOver()
	require.True(t, ok)
	assert.Equal(t, form.NeedNewInstall, c.Need)
}

func TestSelectorRejectsUnknownKey(t *testing.T) {
	s := NewSelector(catalog.Default())
	require.NoError(t, s.Select("Leaking water"))
	err := s.Select("Noisy")
	require.ErrorIs(t, err, catalog.ErrUnknownKey)
	assert.Equal(t, "Leaking water", s.Selected())
}

func request(text string) *Request {
	return &Request{Text: text, Options: catalog.Default().Symptoms}
}

func TestLocalRecognizer(t *testing.T) {
	r := NewLocalRecognizer()
	cases := map[string]string{
		"no cooling":                          "No cooling",
		"Routine maintenance":                 "Maintenance",
		"it's blowing warm air all day":       "No cooling",
		"there is a puddle under the unit":    "Leaking water",
		"the breaker keeps tripping":          "Won’t turn on / tripping breaker",
		"need a tune-up before summer":        "Maintenance",
		"want to install a mini split":        "New install",
		"honestly not sure what's happening":  "Other / Not sure",
	}
	for text, want := range cases {
		got, err := r.Recognize(context.Background(), request(text))
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}
}

func TestLocalRecognizerNoMatch(t *testing.T) {
	r := NewLocalRecognizer()
	_, err := r.Recognize(context.Background(), request("hello"))
	require.ErrorIs(t, err, ErrNoMatch)
	_, err = r.Recognize(context.Background(), request("   "))
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestToolBasedRecognizer(t *testing.T) {
	m := chatmodeltest.New(chatmodeltest.ToolCall(recognizeToolName, `{"key":"Leaking water"}`))
	r, err := NewToolBasedRecognizer(m)
	require.NoError(t, err)

	key, err := r.Recognize(context.Background(), request("condensation all over the floor"))
	require.NoError(t, err)
	assert.Equal(t, "Leaking water", key)

	prompt := m.LastPrompt()
	assert.Contains(t, prompt, recognizeToolName)
	assert.Contains(t, prompt, "condensation all over the floor")
	assert.Contains(t, prompt, "Won’t turn on / tripping breaker")
}

func TestToolBasedRecognizerRejectsUnknownKey(t *testing.T) {
	m := chatmodeltest.New(chatmodeltest.ToolCall(recognizeToolName, `{"key":"Noisy"}`))
	r, err := NewToolBasedRecognizer(m)
	require.NoError(t, err)

	_, err = r.Recognize(context.Background(), request("rattling sound"))
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestFailbackRecognizer(t *testing.T) {
	m := chatmodeltest.New(chatmodeltest.ToolCall(recognizeToolName, `{"key":"No cooling"}`))
	llm, err := NewToolBasedRecognizer(m)
	require.NoError(t, err)
	r := NewFailbackRecognizer(NewLocalRecognizer(), llm)

	key, err := r.Recognize(context.Background(), request("leaking everywhere"))
	require.NoError(t, err)
	assert.Equal(t, "Leaking water", key)
	assert.Zero(t, m.CallCount(), "local hit must not call the model")

	key, err = r.Recognize(context.Background(), request("room feels stuffy"))
	require.NoError(t, err)
	assert.Equal(t, "No cooling", key)
	assert.Equal(t, 1, m.CallCount())
}

func TestFailbackRecognizerAllFail(t *testing.T) {
	m := chatmodeltest.New()
	m.Err = errors.New("offline")
	llm, err := NewToolBasedRecognizer(m)
	require.NoError(t, err)

	_, err = NewFailbackRecognizer(NewLocalRecognizer(), llm).Recognize(context.Background(), request("hmm"))
	require.ErrorIs(t, err, m.Err)
}
