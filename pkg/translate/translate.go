package translate

import (
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/text/language"
)

var placeholderRegex = regexp.MustCompile(`%\{([a-zA-Z0-9_]+)\}`)

// Translator rewrites validation error messages from per-language catalogs.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	catalogs map[string]map[string]string
	tags     []language.Tag
	names    []string
	matcher  language.Matcher
	active   string
}

// Option configures a Translator under construction.
type Option func(*builder)

type builder struct {
	catalogs    map[string]map[string]string
	defaultLang string
}

// WithCatalog registers the code-to-template map for a language, merging
// with any templates already registered for it.
func WithCatalog(lang string, messages map[string]string) Option {
	return func(b *builder) {
		if b.catalogs[lang] == nil {
			b.catalogs[lang] = make(map[string]string, len(messages))
		}
		for code, tmpl := range messages {
			b.catalogs[lang][code] = tmpl
		}
	}
}

// WithDefaultLanguage sets the language used until Language is called.
func WithDefaultLanguage(lang string) Option {
	return func(b *builder) { b.defaultLang = lang }
}

// New builds a translator from the registered catalogs. Every catalog
// language must be a well-formed BCP 47 code; at least one catalog is
// required.
func New(opts ...Option) (*Translator, error) {
	b := &builder{catalogs: make(map[string]map[string]string)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.catalogs) == 0 {
		return nil, ErrNoCatalogs
	}

	names := make([]string, 0, len(b.catalogs))
	for lang := range b.catalogs {
		names = append(names, lang)
	}
	sort.Strings(names)

	tags := make([]language.Tag, len(names))
	for i, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, name)
		}
		tags[i] = tag
	}

	t := &Translator{
		catalogs: b.catalogs,
		tags:     tags,
		names:    names,
		matcher:  language.NewMatcher(tags),
		active:   names[0],
	}
	if b.defaultLang != "" {
		if name, ok := t.matchName(b.defaultLang); ok {
			t.active = name
		}
	}
	return t, nil
}

// Language returns a translator bound to the catalog best matching the
// given BCP 47 code. When nothing matches, the bound translator keeps the
// receiver's language. The receiver itself is unchanged.
func (t *Translator) Language(lang string) *Translator {
	bound := *t
	if name, ok := t.matchName(lang); ok {
		bound.active = name
	}
	return &bound
}

// Languages returns the registered catalog languages in sorted order.
func (t *Translator) Languages() []string {
	return t.names
}

// Translate returns the catalog template for code with %{name}
// placeholders substituted from meta, or message when the active catalog
// has no entry for the code.
func (t *Translator) Translate(code, message string, meta map[string]any) string {
	tmpl, ok := t.catalogs[t.active][code]
	if !ok {
		return message
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholderRegex.FindStringSubmatch(m)[1]
		if v, ok := meta[key]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

func (t *Translator) matchName(lang string) (string, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	_, index, conf := t.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return t.names[index], true
}
