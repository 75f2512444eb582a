// Package locators loads the locator catalog: embedded defaults with an optional YAML
// override file decoded on top.
package locators

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"browser-pom/internal/domain/locator"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Default returns the built-in catalog.
func Default() locator.Catalog {
	var c locator.Catalog
	if err := decode(bytes.NewReader(defaultsYAML), &c); err != nil {
		panic(fmt.Sprintf("locators: embedded defaults: %v", err))
	}
	return c
}

// Load returns the defaults overlaid with the entries present in overridePath. An empty
// path returns the defaults. Keys absent from the file keep their default value.
func Load(overridePath string) (locator.Catalog, error) {
	c := Default()
	if overridePath == "" {
		return c, nil
	}

	f, err := os.Open(overridePath)
	if err != nil {
		return locator.Catalog{}, fmt.Errorf("open locator file: %w", err)
	}
	defer f.Close()

	if err := decode(f, &c); err != nil {
		return locator.Catalog{}, fmt.Errorf("decode %s: %w", overridePath, err)
	}
	if err := c.Validate(); err != nil {
		return locator.Catalog{}, fmt.Errorf("locator file %s: %w", overridePath, err)
	}
	return c, nil
}

func decode(r io.Reader, c *locator.Catalog) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
