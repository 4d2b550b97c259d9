package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"directive-mapper/internal/diagnostic"
)

// LoadFile loads and parses a YAML directive file from the given path.
func LoadFile(path string) (*DirectiveFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directive file %s: %w", path, err)
	}

	df, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	return df, nil
}

// Parse parses YAML data into a DirectiveFile.
func Parse(data []byte) (*DirectiveFile, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*DirectiveFile, error) {
	var df DirectiveFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&df); err != nil && !errors.Is(err, io.EOF) {
		return nil, diagnostic.New(diagnostic.CodeInvalidDirectiveFile, diagnostic.Pos{File: path},
			"failed to parse directive YAML: %v", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err == nil {
		for i, line := range typeLines(&root) {
			if i < len(df.Types) {
				df.Types[i].line = line
			}
		}
	}

	df.Path = path
	applyDefaults(&df)

	return &df, nil
}

// typeLines returns the line of every entry of the top-level "types" list.
func typeLines(root *yaml.Node) []int {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "types" || doc.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}

		var lines []int
		for _, n := range doc.Content[i+1].Content {
			lines = append(lines, n.Line)
		}

		return lines
	}

	return nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(df *DirectiveFile) {
	if df.Version == "" {
		df.Version = "1"
	}

	for i := range df.Transforms {
		t := &df.Transforms[i]
		if t.Func == "" {
			t.Func = t.Name
		}
	}
}

// Marshal serializes a DirectiveFile to YAML.
func Marshal(df *DirectiveFile) ([]byte, error) {
	return yaml.Marshal(df)
}

// WriteFile writes a DirectiveFile to the given path.
func WriteFile(df *DirectiveFile, path string) error {
	data, err := Marshal(df)
	if err != nil {
		return fmt.Errorf("failed to marshal directives: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write directive file %s: %w", path, err)
	}

	return nil
}
