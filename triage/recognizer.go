package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tbxark/intakeflow/catalog"
)

var ErrNoMatch = errors.New("no symptom matched")

// Request asks a recognizer to map free text onto one of Options.
type Request struct {
	Text    string
	Options []catalog.SymptomOption
}

// Recognizer returns the key of the matching option, or ErrNoMatch.
type Recognizer interface {
	Recognize(ctx context.Context, req *Request) (string, error)
}

// LocalRecognizer matches keys, labels and keywords by substring.
type LocalRecognizer struct {
	Keywords map[string][]string
}

func NewLocalRecognizer() *LocalRecognizer {
	return &LocalRecognizer{
		Keywords: map[string][]string{
			"No cooling":                       {"not cooling", "no cool", "warm air", "hot air", "blowing warm", "no cold air"},
			"Leaking water":                    {"leak", "drip", "puddle", "water"},
			"Won’t turn on / tripping breaker": {"won't turn on", "wont turn on", "won’t turn on", "breaker", "no power", "tripping", "dead"},
			"Maintenance":                      {"maintenance", "tune-up", "tune up", "cleaning", "check-up", "checkup"},
			"New install":                      {"install", "new unit", "replacement unit"},
			"Other / Not sure":                 {"not sure", "don't know", "dont know", "no idea"},
		},
	}
}

func (p *LocalRecognizer) Recognize(ctx context.Context, req *Request) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(req.Text))
	if normalized == "" {
		return "", ErrNoMatch
	}
	for _, opt := range req.Options {
		if normalized == strings.ToLower(opt.Key) || normalized == strings.ToLower(opt.Label) {
			return opt.Key, nil
		}
	}
	for _, opt := range req.Options {
		for _, keyword := range p.Keywords[opt.Key] {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				return opt.Key, nil
			}
		}
	}
	return "", ErrNoMatch
}

// FailbackRecognizer asks each recognizer in turn and returns the first hit.
type FailbackRecognizer struct {
	recognizers []Recognizer
}

func NewFailbackRecognizer(recognizers ...Recognizer) *FailbackRecognizer {
	return &FailbackRecognizer{recognizers: recognizers}
}

func (p *FailbackRecognizer) Recognize(ctx context.Context, req *Request) (string, error) {
	lastErr := ErrNoMatch
	for _, r := range p.recognizers {
		key, err := r.Recognize(ctx, req)
		if err == nil {
			return key, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("all recognizers failed: %w", lastErr)
}

func validKey(key string, options []catalog.SymptomOption) bool {
	for _, opt := range options {
		if opt.Key == key {
			return true
		}
	}
	return false
}
