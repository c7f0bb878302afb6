package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"blog/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed returns the catalog built from the embedded posts.
func Seed() (*Catalog, error) {
	return Load(bytes.NewReader(seedYAML))
}

// Load reads a YAML list of posts and builds a catalog from it.
func Load(r io.Reader) (*Catalog, error) {
	var posts []models.Post
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&posts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return New(posts)
}

// LoadFile is Load over the file at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
