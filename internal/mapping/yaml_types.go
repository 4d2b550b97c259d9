package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"directive-mapper/internal/common"
)

// --- DirectiveList YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for DirectiveList.
// Accepts either a single string or an array of strings.
func (l *DirectiveList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*l = DirectiveList{{Text: str, Line: node.Line, Column: node.Column}}
		} else {
			*l = DirectiveList{}
		}

		return nil

	case yaml.SequenceNode:
		out := make(DirectiveList, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: directive must be a string", item.Line)
			}

			out = append(out, DirectiveText{Text: item.Value, Line: item.Line, Column: item.Column})
		}

		*l = out

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for DirectiveList.
// Outputs a single string if length is 1, otherwise an array.
func (l DirectiveList) MarshalYAML() (any, error) {
	if l.IsSingle() {
		return l[0].Text, nil
	}

	return l.Texts(), nil
}

// Texts returns the directive texts.
func (l DirectiveList) Texts() []string {
	out := make([]string, 0, len(l))
	for _, d := range l {
		out = append(out, d.Text)
	}

	return out
}

// IsEmpty returns true if the list is empty.
func (l DirectiveList) IsEmpty() bool {
	return common.IsEmpty(l)
}

// IsSingle returns true if the list has exactly one element.
func (l DirectiveList) IsSingle() bool {
	return common.IsSingle(l)
}
