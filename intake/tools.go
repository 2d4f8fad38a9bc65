package intake

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/types"
)

const (
	ToolSelectSymptom  = "select_symptom"
	ToolCarryToForm    = "carry_to_form"
	ToolSetField       = "set_field"
	ToolSetAttachments = "set_attachments"
	ToolSubmitRequest  = "submit_request"
	ToolToggleFAQ      = "toggle_faq"
	ToolGetState       = "get_state"
)

// ToolOutput is returned by every intake tool. Problems the visitor can fix
// are reported in Message, not as tool errors.
type ToolOutput struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message,omitempty"`
	Effects []types.Effect `json:"effects,omitempty"`
	View    View           `json:"view"`
}

type SelectSymptomInput struct {
	Key  string `json:"key,omitempty" jsonschema:"description=Symptom key copied exactly from the catalog"`
	Text string `json:"text,omitempty" jsonschema:"description=Free-text description used when no key is given"`
}

type CarryToFormInput struct{}

type SetFieldInput struct {
	Field string `json:"field" jsonschema:"required,enum=need,enum=symptom,enum=address,enum=accessNotes,enum=window,enum=contactName,enum=mobile,enum=email,enum=consent,description=Form field to replace"`
	Value string `json:"value" jsonschema:"description=New value kept verbatim. For consent use true or false"`
}

type SetAttachmentsInput struct {
	Names []string `json:"names" jsonschema:"description=File names of the latest selection. Replaces earlier attachments"`
}

type SubmitRequestInput struct{}

type ToggleFAQInput struct {
	Index int `json:"index" jsonschema:"required,description=Zero-based FAQ question index"`
}

type GetStateInput struct{}

// NewTools builds the tools a chat agent uses to drive sessions. Each call
// resolves its session from the context set by WithSessionID.
func NewTools(store *Store) ([]tool.InvokableTool, error) {
	h := toolHandlers{store: store}
	builders := []func() (tool.InvokableTool, error){
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolSelectSymptom,
				"Select the visitor's AC symptom in the triage section, by catalog key or from a free-text description.",
				h.selectSymptom)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolCarryToForm,
				"Copy the selected symptom and its service need into the request form.",
				h.carryToForm)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolSetField,
				"Replace one request form field with a value the visitor provided.",
				h.setField)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolSetAttachments,
				"Replace the attached photos with a new file selection.",
				h.setAttachments)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolSubmitRequest,
				"Submit the service request. Fails with a message when required fields or consent are missing.",
				h.submit)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolToggleFAQ,
				"Expand or collapse one FAQ question.",
				h.toggleFAQ)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool(ToolGetState,
				"Read the current triage selection, form values and submission status.",
				h.getState)
		},
	}
	tools := make([]tool.InvokableTool, 0, len(builders))
	for _, build := range builders {
		t, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to create tool: %w", err)
		}
		tools = append(tools, t)
	}
	return tools, nil
}

type toolHandlers struct {
	store *Store
}

func (h toolHandlers) selectSymptom(ctx context.Context, in *SelectSymptomInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case in.Key != "":
		err = s.Select(in.Key)
	case in.Text != "":
		_, err = s.Recognize(ctx, in.Text)
	default:
		return output(s, false, "Provide a symptom key or a description."), nil
	}
	if err != nil {
		return output(s, false, err.Error()), nil
	}
	return output(s, true, ""), nil
}

func (h toolHandlers) carryToForm(ctx context.Context, _ *CarryToFormInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	applied, effects, err := s.CarryToForm()
	if err != nil {
		return nil, err
	}
	if !applied {
		return output(s, false, "No symptom selected yet."), nil
	}
	out := output(s, true, "")
	out.Effects = effects
	return out, nil
}

func (h toolHandlers) setField(ctx context.Context, in *SetFieldInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	var value any = in.Value
	if in.Field == form.FieldConsent {
		consent, perr := strconv.ParseBool(in.Value)
		if perr != nil {
			return output(s, false, "consent must be true or false"), nil
		}
		value = consent
	}
	if err := s.SetField(in.Field, value); err != nil {
		return output(s, false, err.Error()), nil
	}
	return output(s, true, ""), nil
}

func (h toolHandlers) setAttachments(ctx context.Context, in *SetAttachmentsInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	files := make([]form.Attachment, 0, len(in.Names))
	for _, name := range in.Names {
		files = append(files, form.Attachment{Name: name})
	}
	s.SetAttachments(files)
	return output(s, true, ""), nil
}

func (h toolHandlers) submit(ctx context.Context, _ *SubmitRequestInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	result, err := s.Submit()
	if err != nil {
		if msg := FailureMessage(result.Verdict.Reason); msg != "" {
			return output(s, false, msg), nil
		}
		return nil, err
	}
	if result.Ignored {
		return output(s, false, "A submission is already in progress."), nil
	}
	return output(s, true, StatusMessage(result.State)), nil
}

func (h toolHandlers) toggleFAQ(ctx context.Context, in *ToggleFAQInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	s.ToggleFAQ(in.Index)
	return output(s, true, ""), nil
}

func (h toolHandlers) getState(ctx context.Context, _ *GetStateInput) (*ToolOutput, error) {
	s, err := h.store.FromContext(ctx)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("get_state: %w", err)
		}
		return nil, err
	}
	return output(s, true, ""), nil
}

func output(s *Session, ok bool, msg string) *ToolOutput {
	return &ToolOutput{OK: ok, Message: msg, View: s.View()}
}
