// Package translate provides a catalog-backed message translator for
// validation errors. Catalogs map error codes to message templates per
// language; templates interpolate constraint parameters with %{name}
// placeholders, e.g. "must be at least %{min} characters".
//
// Catalogs are registered programmatically or loaded from a YAML document
// keyed by language code:
//
//	en:
//	  required: "is required"
//	  string_min: "use at least %{min} characters"
//	de:
//	  required: "ist erforderlich"
//
// Language selection uses BCP 47 matching, so a translator built with "en"
// and "de" catalogs serves "de-AT" from the German catalog. Codes missing
// from the selected catalog fall back to the engine's default message.
//
// # Usage
//
//	tr, err := translate.FromYAML(catalogYAML, translate.WithDefaultLanguage("en"))
//	eng := engine.New(engine.WithTranslator(tr.Language("de-AT")))
package translate
