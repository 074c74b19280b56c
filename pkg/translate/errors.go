package translate

import "errors"

var (
	// ErrNoCatalogs is returned when constructing a translator without a
	// single catalog.
	ErrNoCatalogs = errors.New("translate: no catalogs registered")

	// ErrInvalidLanguage is returned for a catalog registered under a
	// malformed BCP 47 language code.
	ErrInvalidLanguage = errors.New("translate: invalid language code")

	// ErrInvalidCatalog wraps YAML documents that do not decode into
	// language-keyed message maps.
	ErrInvalidCatalog = errors.New("translate: invalid catalog document")
)
