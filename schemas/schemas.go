// Package schemas holds the JSON Schema documents that describe model output.
// The files are embedded so validation does not depend on the working directory.
package schemas

import (
	"embed"
	"fmt"
)

// ResumeDocument is the file name of the resume document schema.
const ResumeDocument = "resume_document.schema.json"

//go:embed *.schema.json
var files embed.FS

// Load returns the raw bytes of an embedded schema file.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not found: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded schema files.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
