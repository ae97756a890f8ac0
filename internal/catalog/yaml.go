package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Books []domain.Book `yaml:"books"`
}

// LoadYAMLFile reads a catalog from a YAML document of the form
//
//	books:
//	  - id: 1
//	    title: Dune
//	    ...
func LoadYAMLFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func LoadYAML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(file.Books)
}
