package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tbxark/intakeflow/types"
)

const (
	FieldNeed        = "need"
	FieldSymptom     = "symptom"
	FieldAddress     = "address"
	FieldAccessNotes = "accessNotes"
	FieldWindow      = "window"
	FieldContactName = "contactName"
	FieldMobile      = "mobile"
	FieldEmail       = "email"
	FieldConsent     = "consent"
	FieldAttachments = "attachments"
)

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrPathNotAllowed = errors.New("path is not in the allowed paths set")
)

var (
	fieldNames     = jsonFieldNames(reflect.TypeOf(RequestForm{}))
	fieldTitles    = jsonFieldTitles(reflect.TypeOf(RequestForm{}))
	editablePaths  = pathSet(editableFieldNames()...)
	carryOverPaths = pathSet(FieldNeed, FieldSymptom)
)

// Fields lists the form fields in declaration order.
func Fields() []string {
	out := make([]string, len(fieldNames))
	copy(out, fieldNames)
	return out
}

func IsField(name string) bool {
	for _, n := range fieldNames {
		if n == name {
			return true
		}
	}
	return false
}

func Pointer(name string) string {
	return "/" + escapeJSONPointer(name)
}

// Info describes a field for prompts and validation output.
func Info(name string, required bool) types.FieldInfo {
	display := fieldTitles[name]
	if display == "" {
		display = name
	}
	return types.FieldInfo{
		JSONPointer: Pointer(name),
		DisplayName: display,
		Required:    required,
	}
}

func checkEditable(name string) error {
	if !IsField(name) {
		return fmt.Errorf("%q: %w", name, ErrUnknownField)
	}
	if !editablePaths[Pointer(name)] {
		return fmt.Errorf("%q: %w", name, ErrPathNotAllowed)
	}
	return nil
}

func editableFieldNames() []string {
	out := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		if name == FieldAttachments {
			continue
		}
		out = append(out, name)
	}
	return out
}

func pathSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[Pointer(name)] = true
	}
	return set
}

func jsonFieldNames(typ reflect.Type) []string {
	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if name := jsonFieldName(typ.Field(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func jsonFieldTitles(typ reflect.Type) map[string]string {
	titles := make(map[string]string, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := jsonFieldName(field)
		if name == "" {
			continue
		}
		for _, part := range strings.Split(field.Tag.Get("jsonschema"), ",") {
			if title, ok := strings.CutPrefix(part, "title="); ok {
				titles[name] = title
			}
		}
	}
	return titles
}

func jsonFieldName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func escapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}
