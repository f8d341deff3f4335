// Package i18n translates labels and messages of the command line interface.
// Locales are embedded JSON files named active.<lang>.json.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-vcfedit/internal/calendar"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

type catalog struct {
	bundle  *goi18n.Bundle
	langs   []string
	matcher language.Matcher
}

// loadCatalog reads the embedded locales once. Files that fail to load are
// logged and skipped.
var loadCatalog = sync.OnceValue(func() *catalog {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &catalog{bundle: bundle}

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	// The default language comes first so that the matcher falls back to it.
	tags := []language.Tag{language.English}
	c.langs = []string{config.DefaultLanguage}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		tag, err := language.Parse(code)
		if code == "" || err != nil {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)

		if code != config.DefaultLanguage {
			tags = append(tags, tag)
			c.langs = append(c.langs, code)
		}
	}

	c.matcher = language.NewMatcher(tags)
	return c
})

// Languages lists the embedded locales, default first.
func Languages() []string {
	return loadCatalog().langs
}

// Translator looks up messages for one language.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
}

// New returns a Translator for lang. Regional variants resolve to their base
// language ("fr-CA" uses "fr"); unsupported languages use the default one.
func New(lang string) *Translator {
	c := loadCatalog()

	resolved := config.DefaultLanguage
	if tag, err := language.Parse(lang); err == nil {
		if _, idx, conf := c.matcher.Match(tag); conf != language.No {
			resolved = c.langs[idx]
		}
	}
	if lang != "" && !strings.HasPrefix(strings.ToLower(lang), resolved) {
		slog.Warn(config.MsgLocaleUnknown,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeySupported, c.langs,
		)
	}

	return &Translator{
		lang:      resolved,
		localizer: goi18n.NewLocalizer(c.bundle, resolved),
	}
}

// Lang returns the resolved language code.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates key, returning the key itself when no message exists.
func (t *Translator) T(key string) string {
	return t.Tf(key, nil)
}

// Tf translates a templated message.
func (t *Translator) Tf(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Label translates an enum value, e.g. Label(config.TKeyPrefixPhone, "cell").
// An empty value uses the "<prefix>unset" key.
func (t *Translator) Label(prefix, value string) string {
	if value == "" {
		return t.T(prefix + "unset")
	}
	return t.T(prefix + strings.ToLower(value))
}

// EventSummary titles calendar events; it fits calendar.Exporter.FormatSummary.
func (t *Translator) EventSummary(kind calendar.Kind, name string) string {
	key := config.TKeyEvtBirthday
	if kind == calendar.KindAnniversary {
		key = config.TKeyEvtAnniversary
	}
	return t.Tf(key, map[string]any{"Name": name})
}
