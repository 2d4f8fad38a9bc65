package triage

import (
	"strings"

	"github.com/tbxark/intakeflow/form"
)

// Classify infers the service need from a symptom key. Rules are checked in
// order and the first match wins; an empty key has no need.
func Classify(key string) form.Need {
	lower := strings.ToLower(key)
	switch {
	case key == "":
		return ""
	case strings.Contains(lower, "maintenance"):
		return form.NeedMaintenance
	case strings.Contains(lower, "install"):
		return form.NeedNewInstall
	default:
		return form.NeedRepair
	}
}

// CarryOverFor builds the form patch for a selected key. The key itself
// becomes the symptom, unmodified.
func CarryOverFor(key string) (form.CarryOver, bool) {
	if key == "" {
		return form.CarryOver{}, false
	}
	return form.CarryOver{Need: Classify(key), Symptom: key}, true
}
