package jsonish

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// I18n returns an initialized internationalization bundle with embedded
// locales, for localizing ParseError messages (§9).
func I18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	err := bundle.LoadFS(localesFS, "locales/*.json")

	return bundle, err
}

// code maps a ParseError's sentinel to a locale message key.
func (e *ParseError) code() string {
	switch e.Err {
	case ErrUnexpectedType:
		return "unexpected_type"
	case ErrUnexpectedNull:
		return "unexpected_null"
	case ErrMissingRequiredField:
		return "missing_required_field"
	case ErrUnparseableField:
		return "unparseable_field"
	case ErrTooManyMatches:
		return "too_many_matches"
	case ErrNoMatch:
		return "no_match"
	case ErrCircularReference:
		return "circular_reference"
	case ErrRecursionLimit:
		return "recursion_limit"
	case ErrConstraintFailed:
		return "constraint_failed"
	default:
		return "internal_error"
	}
}

// Localize renders the error through localizer, or returns Error() when
// localizer is nil.
func (e *ParseError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	return localizer.Get(e.code(), i18n.Vars(map[string]any{
		"path":   e.Path.String(),
		"reason": e.Reason,
	}))
}
