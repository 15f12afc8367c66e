// Package i18n formats products, reviews and money for the supported locales. Each locale
// is described by an embedded resource bundle holding its message templates, currency and
// short date layout.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// FallbackLocale is used for any tag without a bundle.
const FallbackLocale = "en-GB"

//go:embed bundles/*.properties
var bundles embed.FS

// Registry holds one Formatter per supported locale. It is read-only after construction.
type Registry struct {
	formatters map[string]*Formatter
	defaultTag string
	logger     *slog.Logger
}

// NewRegistry loads every embedded bundle. defaultTag must name one of them.
func NewRegistry(defaultTag string, logger *slog.Logger) (*Registry, error) {
	names, err := fs.Glob(bundles, "bundles/*.properties")
	if err != nil {
		return nil, fmt.Errorf("failed to list locale bundles: %w", err)
	}

	codecs, err := newCodecRegistry()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		formatters: make(map[string]*Formatter, len(names)),
		logger:     logger,
	}
	for _, name := range names {
		tag := strings.TrimSuffix(path.Base(name), "."+bundleFormat)
		f, err := loadFormatter(codecs, name, tag)
		if err != nil {
			return nil, err
		}
		r.formatters[f.Tag()] = f
	}

	def, ok := r.formatters[normalize(defaultTag)]
	if !ok {
		return nil, fmt.Errorf("default locale %q is not supported", defaultTag)
	}
	r.defaultTag = def.Tag()

	logger.Debug("Locale bundles loaded",
		slog.Int("count", len(r.formatters)),
		slog.String("default", r.defaultTag))
	return r, nil
}

// Lookup returns the formatter for tag, or the fallback locale's formatter when tag is
// unknown or unparsable.
func (r *Registry) Lookup(tag string) *Formatter {
	if f, ok := r.formatters[normalize(tag)]; ok {
		return f
	}
	r.logger.Debug("Unsupported locale, using fallback",
		slog.String("locale", tag),
		slog.String("fallback", FallbackLocale))
	return r.formatters[FallbackLocale]
}

func (r *Registry) Default() *Formatter {
	return r.formatters[r.defaultTag]
}

// Supported lists the locale tags in sorted order.
func (r *Registry) Supported() []string {
	tags := make([]string, 0, len(r.formatters))
	for tag := range r.formatters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func loadFormatter(codecs *viper.DefaultCodecRegistry, name, tag string) (*Formatter, error) {
	data, err := bundles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", name, err)
	}

	v := viper.NewWithOptions(viper.WithCodecRegistry(codecs))
	v.SetConfigType(bundleFormat)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse bundle %s: %w", name, err)
	}

	lang, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("bundle %s has an invalid locale tag: %w", name, err)
	}

	messages := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		messages[key] = v.GetString(key)
	}
	return newFormatter(lang, messages)
}

// normalize canonicalizes a tag so "en-gb" and "en_GB" find the en-GB bundle.
func normalize(tag string) string {
	lang, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return tag
	}
	return lang.String()
}
