package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
	OperationRemove  = "remove"
)

// Operation is one RFC 6902 JSON Patch operation against a RequestForm.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Apply runs ops against current, rejecting any path outside allowed.
// On error current is returned unchanged.
func Apply(current RequestForm, ops []Operation, allowed []string) (RequestForm, error) {
	set := make(map[string]bool, len(allowed))
	for _, path := range allowed {
		set[path] = true
	}
	return applyPatch(current, ops, set)
}

func applyPatch(current RequestForm, ops []Operation, allowed map[string]bool) (RequestForm, error) {
	if err := validateOperations(ops, allowed); err != nil {
		return current, fmt.Errorf("patch validation failed: %w", err)
	}
	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("failed to marshal current state: %w", err)
	}

	ops = fixOperations(currentJSON, ops)

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return current, fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return current, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return current, fmt.Errorf("failed to apply patch: %w", err)
	}

	var result RequestForm
	if err := sonic.Unmarshal(modifiedJSON, &result); err != nil {
		return current, fmt.Errorf("type mismatch: patch would result in an invalid form: %w", err)
	}
	return result, nil
}

func validateOperations(ops []Operation, allowed map[string]bool) error {
	for i, op := range ops {
		if !allowed[op.Path] {
			return fmt.Errorf("operation %d: %q: %w", i, op.Path, ErrPathNotAllowed)
		}
		switch op.Op {
		case OperationAdd, OperationReplace, OperationRemove:
		default:
			return fmt.Errorf("operation %d: unsupported op %q", i, op.Op)
		}
	}
	return nil
}

// fixOperations turns replace-on-missing into add and drops remove-on-missing,
// so a patch written against a sparse document still applies.
func fixOperations(currentJSON []byte, ops []Operation) []Operation {
	var doc any
	if err := sonic.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}

	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Op {
		case OperationReplace:
			if !pathExists(doc, op.Path) {
				op.Op = OperationAdd
			}
			fixed = append(fixed, op)
		case OperationRemove:
			if pathExists(doc, op.Path) {
				fixed = append(fixed, op)
			}
		default:
			fixed = append(fixed, op)
		}
	}
	return fixed
}

func pathExists(doc any, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}

	cur := doc
	for _, token := range strings.Split(path[1:], "/") {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		switch node := cur.(type) {
		case map[string]any:
			value, ok := node[token]
			if !ok {
				return false
			}
			cur = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return false
			}
			cur = node[index]
		default:
			return false
		}
	}
	return true
}
