package messages

// Catalog validation messages.
const (
	CatalogEmpty                = "catalog has no categories"
	CatalogCategoryTitleMissing = "categories[%d].title is required"
	CatalogCategoryDuplicateFmt = "categories[%d].title %q duplicates categories[%d].title"
	CatalogCategoryEmptyFmt     = "category %q has no packages"
	CatalogPackageBlankFmt      = "category %q has a blank package name"
	CatalogCheckedUnknownFmt    = "category %q marks %q as checked but does not list it"
	CatalogEncodeFmt            = "encode catalog as %s: %w"
)
