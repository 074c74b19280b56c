package translate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML builds a translator from a YAML document whose top-level keys
// are language codes and whose values map error codes to message
// templates. Extra options apply after the catalogs load.
func FromYAML(data []byte, opts ...Option) (*Translator, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}

	catalogOpts := make([]Option, 0, len(doc)+len(opts))
	for lang, messages := range doc {
		catalogOpts = append(catalogOpts, WithCatalog(lang, messages))
	}
	return New(append(catalogOpts, opts...)...)
}

// FromYAMLFile reads path and delegates to FromYAML.
func FromYAMLFile(path string, opts ...Option) (*Translator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("translate: read catalog file: %w", err)
	}
	return FromYAML(data, opts...)
}
