// Package catalog holds the preset package categories offered as checkboxes.
package catalog

import (
	"fmt"
	"strings"

	"github.com/conn-castle/devstarter/internal/messages"
)

// Category is one checkbox group: a title and the package names it offers.
// Checked lists the packages preselected when the form opens.
type Category struct {
	Title    string   `toml:"title" yaml:"title"`
	Packages []string `toml:"packages" yaml:"packages"`
	Checked  []string `toml:"checked,omitempty" yaml:"checked,omitempty"`
}

// Catalog is the ordered set of categories shown to the user.
type Catalog struct {
	Categories []Category `toml:"categories" yaml:"categories"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{Categories: []Category{
		{Title: "Math/Data Science", Packages: []string{"numpy", "pandas", "scikit-learn"}},
		{Title: "Web Development", Packages: []string{"flask", "beautifulsoup4", "requests", "streamlit"}},
		{Title: "Visualization", Packages: []string{"matplotlib"}},
		{Title: "GUI Development", Packages: []string{"PyQt5", "PyQt5Designer"}},
		{Title: "Database", Packages: []string{"sqlalchemy", "psycopg2"}},
		{Title: "Software Development Tools", Packages: []string{"pyinstaller", "pipreqs"}, Checked: []string{"pipreqs"}},
	}}
}

// Validate reports the first structural problem in the catalog.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf(messages.CatalogEmpty)
	}
	seen := make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		title := strings.TrimSpace(cat.Title)
		if title == "" {
			return fmt.Errorf(messages.CatalogCategoryTitleMissing, i)
		}
		key := strings.ToLower(title)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(messages.CatalogCategoryDuplicateFmt, i, title, prev)
		}
		seen[key] = i
		if len(cat.Packages) == 0 {
			return fmt.Errorf(messages.CatalogCategoryEmptyFmt, title)
		}
		for _, pkg := range cat.Packages {
			if strings.TrimSpace(pkg) == "" {
				return fmt.Errorf(messages.CatalogPackageBlankFmt, title)
			}
		}
		for _, checked := range cat.Checked {
			if !cat.Offers(checked) {
				return fmt.Errorf(messages.CatalogCheckedUnknownFmt, title, checked)
			}
		}
	}
	return nil
}

// Offers reports whether the category lists pkg.
func (c Category) Offers(pkg string) bool {
	for _, p := range c.Packages {
		if p == pkg {
			return true
		}
	}
	return false
}

// IsChecked reports whether pkg is preselected in the category.
func (c Category) IsChecked(pkg string) bool {
	for _, p := range c.Checked {
		if p == pkg {
			return true
		}
	}
	return false
}

// Lookup finds a category by title, ignoring case and surrounding spaces.
func (c Catalog) Lookup(title string) (Category, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, cat := range c.Categories {
		if strings.ToLower(strings.TrimSpace(cat.Title)) == want {
			return cat, true
		}
	}
	return Category{}, false
}

// Offers reports whether any category lists pkg.
func (c Catalog) Offers(pkg string) bool {
	for _, cat := range c.Categories {
		if cat.Offers(pkg) {
			return true
		}
	}
	return false
}

// Defaults returns the preselected packages in display order.
func (c Catalog) Defaults() []string {
	var out []string
	for _, cat := range c.Categories {
		for _, pkg := range cat.Packages {
			if cat.IsChecked(pkg) {
				out = append(out, pkg)
			}
		}
	}
	return out
}

// PackageCount returns the number of package entries across all categories.
func (c Catalog) PackageCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Packages)
	}
	return n
}

// Order sorts selected into catalog display order, the order checkboxes are
// read top to bottom. Names the catalog does not offer keep their relative
// order and go last. Duplicates are kept.
func (c Catalog) Order(selected []string) []string {
	remaining := append([]string(nil), selected...)
	out := make([]string, 0, len(selected))
	for _, cat := range c.Categories {
		for _, pkg := range cat.Packages {
			for i := 0; i < len(remaining); i++ {
				if remaining[i] == pkg {
					out = append(out, pkg)
					remaining = append(remaining[:i], remaining[i+1:]...)
					i--
				}
			}
		}
	}
	return append(out, remaining...)
}
