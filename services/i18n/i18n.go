package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed *.json
var fs embed.FS

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = "en"

var (
	// "fr" -> "form.invalid_email" -> "Adresse e-mail invalide"
	bundles = make(map[string]map[string]string)
	mutex   sync.RWMutex
	matcher language.Matcher
	tags    []string
)

func init() {
	if err := Load(); err != nil {
		panic(err)
	}
}

// Load reads every embedded <lang>.json bundle. It is called from init and
// may be called again to reset state in tests.
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	loaded := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")

		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var nested map[string]interface{}
		if err := json.Unmarshal(content, &nested); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		loaded[lang] = flat
		log.Debug().Str("lang", lang).Int("keys", len(flat)).Msg("Loaded locale")
	}

	if _, ok := loaded[DefaultLanguage]; !ok {
		return fmt.Errorf("default locale %q is missing", DefaultLanguage)
	}

	// The default language goes first so the matcher falls back to it
	names := make([]string, 0, len(loaded))
	for lang := range loaded {
		if lang != DefaultLanguage {
			names = append(names, lang)
		}
	}
	sort.Strings(names)
	names = append([]string{DefaultLanguage}, names...)

	supported := make([]language.Tag, len(names))
	for i, name := range names {
		supported[i] = language.Make(name)
	}

	bundles = loaded
	tags = names
	matcher = language.NewMatcher(supported)
	return nil
}

// flatten turns nested objects into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(key, child, result)
		case string:
			result[key] = child
		default:
			result[key] = fmt.Sprintf("%v", child)
		}
	}
}

// Languages lists the loaded language codes, default first.
func Languages() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// IsSupported reports whether lang has a bundle.
func IsSupported(lang string) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	_, ok := bundles[lang]
	return ok
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if acceptLanguage == "" {
		return DefaultLanguage
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return tags[index]
}

// T translates key using the language stored in ctx.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate looks key up in lang, then in the default language, and finally
// returns the key itself. {name} placeholders are replaced from args.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if bundle, ok := bundles[lang]; ok {
		if val, ok := bundle[key]; ok {
			return format(val, args...)
		}
	}
	if lang != DefaultLanguage {
		if val, ok := bundles[DefaultLanguage][key]; ok {
			return format(val, args...)
		}
	}
	return key
}

func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}
	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

type contextKey string

// LocaleContextKey is where middleware stores the request language.
const LocaleContextKey contextKey = "locale"

// WithLocale returns ctx carrying lang.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale extracts the language from ctx, defaulting to English.
func GetLocale(ctx context.Context) string {
	if lang, ok := ctx.Value(LocaleContextKey).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}
