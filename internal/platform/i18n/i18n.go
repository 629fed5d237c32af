// Package i18n defines the supported languages and tag matching rules.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	_ "github.com/louisbranch/explorer/internal/platform/i18n/catalog"
)

var (
	supportedTags = []language.Tag{
		language.MustParse("en-US"),
		language.MustParse("pt-BR"),
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it maps to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return baseSupported(matched), true
}

// MatchTags returns the best supported tag for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return baseSupported(matched)
}

// LocaleString returns the catalog locale identifier for tag.
func LocaleString(tag language.Tag) string {
	return baseSupported(tag).String()
}

// baseSupported strips matcher extensions (such as -u-rg) so tags compare
// equal to the supported list.
func baseSupported(tag language.Tag) language.Tag {
	for _, supported := range supportedTags {
		if tag == supported {
			return supported
		}
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	for _, supported := range supportedTags {
		sBase, _ := supported.Base()
		sRegion, _ := supported.Region()
		if sBase == base && sRegion == region {
			return supported
		}
	}
	for _, supported := range supportedTags {
		sBase, _ := supported.Base()
		if sBase == base {
			return supported
		}
	}
	return DefaultTag()
}
