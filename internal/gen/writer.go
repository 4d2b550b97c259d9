package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files. Files go to outputDir when it is set,
// otherwise next to the type they were generated for.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		dir := outputDir
		if dir == "" {
			dir = file.Dir
		}

		if dir == "" {
			return fmt.Errorf("no output directory for %s", file.Filename)
		}

		err := os.MkdirAll(dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. Failures are ignored by callers.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
