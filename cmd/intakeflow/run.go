package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tbxark/intakeflow/form"
	"github.com/tbxark/intakeflow/intake"
	"github.com/tbxark/intakeflow/types"
	"github.com/tbxark/intakeflow/validate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive intake session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startRepl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

const replHelp = `Commands:
  select <key>          pick a symptom from the catalog
  describe <text>       describe the problem in your own words
  carry                 copy the triage result into the request form
  set <field> <value>   set a form field (consent takes yes/no)
  files <name>...       replace attached photos
  submit                submit the request
  faq [index]           list the FAQ or toggle one question
  mode renter|owner     switch audience copy
  show                  show the request form
  chat <text>           talk to the assistant (needs llm.api_key)
  help                  show this help
  quit                  leave`

// console serializes writes from the prompt loop and the acknowledgment timer.
type console struct {
	mu  sync.Mutex
	out io.Writer
}

func (c *console) printf(attr color.Attribute, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	color.New(attr).Fprintf(c.out, format+"\n", args...)
}

func (c *console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func (c *console) effect(e types.Effect) {
	if e.Kind == types.EffectFocusSection {
		c.printf(color.FgCyan, "→ %s", e.Section)
	}
	if e.Section == types.SectionSuccessNote {
		c.printf(color.FgGreen, "%s", intake.MessageAcknowledged)
	}
}

type repl struct {
	con       *console
	session   *intake.Session
	assistant *adk.Runner
	history   []adk.Message
}

func startRepl(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	con := &console{out: out}
	a, err := loadApp(ctx, con.effect)
	if err != nil {
		return err
	}
	defer a.Close()

	r := &repl{con: con, session: a.store.Create()}
	if a.chatModel != nil {
		assistant, err := intake.NewAssistant(ctx, a.chatModel, a.store, intake.WithAssistantLogger(a.logger))
		if err != nil {
			return err
		}
		r.assistant = adk.NewRunner(ctx, adk.RunnerConfig{Agent: assistant})
	}
	ctx = intake.WithSessionID(ctx, r.session.ID())

	con.printf(color.FgCyan, "Tell us what's going on. Type 'help' for commands.")
	con.println(a.catalog.SymptomsMarkdown())
	reader := bufio.NewReader(in)
	for {
		con.printf(color.FgHiBlack, "> ")
		line, rErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			quit, err := r.dispatch(ctx, line)
			if err != nil {
				con.printf(color.FgRed, "%v", err)
			}
			if quit {
				return nil
			}
		}
		if rErr != nil {
			if errors.Is(rErr, io.EOF) {
				return nil
			}
			return rErr
		}
	}
}

func (r *repl) dispatch(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	s := r.session

	switch strings.ToLower(name) {
	case "quit", "exit":
		return true, nil
	case "help":
		r.con.println(replHelp)
	case "select":
		if err := s.Select(rest); err != nil {
			return false, err
		}
		r.con.printf(color.FgGreen, "Selected: %s", rest)
	case "describe":
		key, err := s.Recognize(ctx, rest)
		if err != nil {
			return false, err
		}
		r.con.printf(color.FgGreen, "Sounds like: %s", key)
	case "carry":
		applied, _, err := s.CarryToForm()
		if err != nil {
			return false, err
		}
		if !applied {
			r.con.printf(color.FgYellow, "Pick a symptom first.")
		}
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		return false, r.setField(field, value)
	case "files":
		var files []form.Attachment
		for _, n := range strings.Fields(rest) {
			files = append(files, form.Attachment{Name: n})
		}
		s.SetAttachments(files)
		r.con.println("Attached: " + s.AttachmentNames())
	case "submit":
		return false, r.submit()
	case "faq":
		return false, r.faq(rest)
	case "mode":
		if err := s.SetMode(intake.Mode(rest)); err != nil {
			return false, err
		}
		for _, item := range intake.Checklist(s.Mode()) {
			r.con.println("✓ " + item)
		}
	case "show":
		r.show()
	case "chat":
		return false, r.chat(ctx, rest)
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", name)
	}
	return false, nil
}

func (r *repl) setField(field, value string) error {
	if field == form.FieldConsent {
		consent, err := parseYesNo(value)
		if err != nil {
			return err
		}
		return r.session.SetField(field, consent)
	}
	return r.session.SetField(field, value)
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func (r *repl) submit() error {
	res, err := r.session.Submit()
	switch {
	case errors.Is(err, validate.ErrMissingRequiredField):
		r.con.printf(color.FgRed, "%s", intake.FailureMessage(res.Verdict.Reason))
		r.con.println(types.FormatMissingFields(res.Verdict.Missing))
		return nil
	case errors.Is(err, validate.ErrConsentRequired):
		r.con.printf(color.FgRed, "%s", intake.FailureMessage(res.Verdict.Reason))
		return nil
	case err != nil:
		return err
	case res.Ignored:
		r.con.printf(color.FgYellow, "Already sending your request.")
		return nil
	}
	r.con.printf(color.FgCyan, "%s", intake.StatusMessage(res.State))
	return nil
}

func (r *repl) faq(arg string) error {
	cat := r.session.Catalog()
	if arg == "" {
		open := r.session.View().FAQOpen
		for i, entry := range cat.FAQ {
			marker := "+"
			if open[i] {
				marker = "-"
			}
			r.con.println(fmt.Sprintf("%s %d. %s", marker, i, entry.Question))
			if open[i] {
				r.con.println("    " + entry.Answer)
			}
		}
		return nil
	}
	i, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("faq index must be a number: %w", err)
	}
	if r.session.ToggleFAQ(i) && i >= 0 && i < len(cat.FAQ) {
		r.con.println(cat.FAQ[i].Answer)
	}
	return nil
}

func (r *repl) show() {
	v := r.session.View()
	rows := make([][]string, 0, len(form.Fields()))
	for _, name := range form.Fields() {
		value := v.Form.Text(name)
		switch name {
		case form.FieldAttachments:
			value = v.AttachmentNames
		case form.FieldConsent:
			value = strconv.FormatBool(v.Form.Consent)
		}
		rows = append(rows, []string{form.Info(name, false).DisplayName, value})
	}
	r.con.println(types.FormatTable(fmt.Sprintf("Request (%s, %s)", v.Mode, v.Submission), []string{"Field", "Value"}, rows))
	if v.FailureMessage != "" {
		r.con.printf(color.FgRed, "%s", v.FailureMessage)
	}
}

func (r *repl) chat(ctx context.Context, text string) error {
	if r.assistant == nil {
		return errors.New("assistant is disabled, set llm.api_key")
	}
	r.history = append(r.history, schema.UserMessage(text))
	iter := r.assistant.Run(ctx, r.history)
	for {
		event, ok := iter.Next()
		if !ok {
			return nil
		}
		if event.Err != nil {
			return event.Err
		}
		msg, err := event.Output.MessageOutput.GetMessage()
		if err != nil {
			return err
		}
		r.history = append(r.history, msg)
		r.con.printf(color.FgMagenta, "%s", msg.Content)
	}
}
