package form

import (
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
)

// Diff returns the replace operations that turn before into after, in field
// declaration order. An empty result means the snapshots are equal.
func Diff(before, after RequestForm) ([]Operation, error) {
	beforeMap, err := toMap(before)
	if err != nil {
		return nil, fmt.Errorf("failed to convert previous state: %w", err)
	}
	afterMap, err := toMap(after)
	if err != nil {
		return nil, fmt.Errorf("failed to convert next state: %w", err)
	}

	ops := make([]Operation, 0)
	for _, name := range fieldNames {
		next, ok := afterMap[name]
		if !ok {
			continue
		}
		if prev, existed := beforeMap[name]; existed && reflect.DeepEqual(prev, next) {
			continue
		}
		ops = append(ops, Operation{Op: OperationReplace, Path: Pointer(name), Value: next})
	}
	return ops, nil
}

// ChangedFields is Diff reduced to field names.
func ChangedFields(before, after RequestForm) []string {
	ops, err := Diff(before, after)
	if err != nil {
		return nil
	}
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Path[1:]
	}
	return names
}

func toMap(f RequestForm) (map[string]any, error) {
	data, err := sonic.Marshal(f)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
