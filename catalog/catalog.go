package catalog

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tbxark/intakeflow/types"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateKey = errors.New("duplicate symptom key")
	ErrEmptyKey     = errors.New("empty symptom key")
	ErrUnknownKey   = errors.New("unknown symptom key")
)

// SymptomOption is one entry of the triage selector.
type SymptomOption struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

type FAQEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Catalog holds the static inputs of an intake session. It is read-only once
// validated and may be shared between sessions.
type Catalog struct {
	Symptoms []SymptomOption `yaml:"symptoms" json:"symptoms"`
	FAQ      []FAQEntry      `yaml:"faq" json:"faq"`
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML catalog file. Sections missing from the file fall back to
// the built-in defaults.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	def := Default()
	if len(c.Symptoms) == 0 {
		c.Symptoms = def.Symptoms
	}
	if len(c.FAQ) == 0 {
		c.FAQ = def.FAQ
	}
	return c, nil
}

func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Symptoms))
	for i, opt := range c.Symptoms {
		if opt.Key == "" {
			return fmt.Errorf("symptom %d: %w", i, ErrEmptyKey)
		}
		if seen[opt.Key] {
			return fmt.Errorf("symptom %q: %w", opt.Key, ErrDuplicateKey)
		}
		seen[opt.Key] = true
	}
	return nil
}

func (c *Catalog) Lookup(key string) (SymptomOption, bool) {
	for _, opt := range c.Symptoms {
		if opt.Key == key {
			return opt, true
		}
	}
	return SymptomOption{}, false
}

func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Symptoms))
	for i, opt := range c.Symptoms {
		keys[i] = opt.Key
	}
	return keys
}

func (c *Catalog) SymptomsMarkdown() string {
	rows := make([][]string, 0, len(c.Symptoms))
	for _, opt := range c.Symptoms {
		rows = append(rows, []string{opt.Key, opt.Label})
	}
	return types.FormatTable("Symptoms", []string{"Key", "Label"}, rows)
}

func (c *Catalog) FAQMarkdown() string {
	rows := make([][]string, 0, len(c.FAQ))
	for i, entry := range c.FAQ {
		rows = append(rows, []string{strconv.Itoa(i), entry.Question, entry.Answer})
	}
	return types.FormatTable("FAQ", []string{"#", "Question", "Answer"}, rows)
}
