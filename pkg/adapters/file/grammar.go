// Package file reads and writes grammar documents on the local filesystem.
// Documents are YAML unless the file extension is .json.
package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions recognized as grammar documents.
var Extensions = []string{".yaml", ".yml", ".json"}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Parse decodes a grammar document. asJSON selects the JSON decoder.
func Parse(data []byte, asJSON bool) (domain.Grammar, error) {
	raw := make(map[string]any)
	if asJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return domain.Grammar{}, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Grammar{}, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, err)
	}

	doc, err := dto.Decode(raw)
	if err != nil {
		return domain.Grammar{}, err
	}
	return doc.ToGrammar()
}

// LoadGrammar reads the grammar document at path. A document without a
// name is named after the file.
func LoadGrammar(path string) (domain.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Grammar{}, fmt.Errorf("failed to read grammar: %w", err)
	}
	g, err := Parse(data, isJSON(path))
	if err != nil {
		return domain.Grammar{}, fmt.Errorf("%s: %w", path, err)
	}
	if g.Name == "" {
		g.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

// Marshal encodes g as a document.
func Marshal(g domain.Grammar, asJSON bool) ([]byte, error) {
	doc, err := dto.FromGrammar(g)
	if err != nil {
		return nil, err
	}
	if asJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// SaveGrammar writes g to path atomically.
// It writes to a temporary file in the same directory, syncs it, then renames it.
func SaveGrammar(path string, g domain.Grammar) error {
	data, err := Marshal(g, isJSON(path))
	if err != nil {
		return fmt.Errorf("failed to encode grammar %q: %w", g.Name, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename grammar file: %w", err)
	}
	return nil
}
