package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/conn-castle/devstarter/internal/messages"
)

// Output formats accepted by Encode.
const (
	FormatText = "text"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Encode writes the catalog to w in the requested format. The toml output can
// be pasted into the config file as-is.
func Encode(w io.Writer, c Catalog, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return encodeText(w, c)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetArraysMultiline(false)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf(messages.CatalogEncodeFmt, FormatTOML, err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf(messages.CatalogEncodeFmt, FormatYAML, err)
		}
		return enc.Close()
	default:
		return fmt.Errorf(messages.CatalogUnknownFormatFmt, format)
	}
}

func encodeText(w io.Writer, c Catalog) error {
	for _, cat := range c.Categories {
		if _, err := fmt.Fprintf(w, messages.CatalogCategoryHeaderFmt, cat.Title); err != nil {
			return err
		}
		for _, pkg := range cat.Packages {
			mark := messages.CatalogUncheckedMark
			if cat.IsChecked(pkg) {
				mark = messages.CatalogCheckedMark
			}
			if _, err := fmt.Fprintf(w, messages.CatalogEntryFmt, mark, pkg); err != nil {
				return err
			}
		}
	}
	return nil
}
