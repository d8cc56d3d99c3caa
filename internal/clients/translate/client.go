package translate

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"review-server/internal/observability"

	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

const (
	cacheSize      = 256
	requestTimeout = 6 * time.Second
	sourceLanguage = "en"
)

// countryLanguages maps a lowercased country fragment to a language code.
var countryLanguages = []struct {
	fragment string
	language string
}{
	{"czech republic", "cs"},
	{"czechia", "cs"},
	{"czech", "cs"},
	{"cesko", "cs"},
	{"slovak republic", "sk"},
	{"slovakia", "sk"},
	{"slovak", "sk"},
}

// LanguageFor returns the language campaign emails are localized to for a
// free-form country string.
func LanguageFor(country string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(country))
	if normalized == "" {
		return "", false
	}
	for _, entry := range countryLanguages {
		if strings.Contains(normalized, entry.fragment) {
			return entry.language, true
		}
	}
	return "", false
}

type backend interface {
	translate(ctx context.Context, values []string, language string) ([]string, error)
}

type googleBackend struct {
	service *translatev2.Service
}

func (g googleBackend) translate(ctx context.Context, values []string, language string) ([]string, error) {
	resp, err := g.service.Translations.List(values, language).
		Source(sourceLanguage).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Translations) != len(values) {
		return nil, fmt.Errorf("expected %d translations, got %d", len(values), len(resp.Translations))
	}
	out := make([]string, len(values))
	for i, t := range resp.Translations {
		out[i] = html.UnescapeString(t.TranslatedText)
	}
	return out, nil
}

// Client translates outbound email strings. Failures never surface; the
// original strings are returned instead.
type Client struct {
	backend backend
	cache   *lru.Cache[string, string]
	logger  *observability.Logger
}

// NewClient returns a client that leaves strings untranslated when apiKey is empty.
func NewClient(ctx context.Context, apiKey string, logger *observability.Logger) (*Client, error) {
	var b backend
	if apiKey != "" {
		service, err := translatev2.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create translate service: %w", err)
		}
		b = googleBackend{service: service}
	}
	return newClient(b, logger)
}

func newClient(b backend, logger *observability.Logger) (*Client, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation cache: %w", err)
	}
	return &Client{backend: b, cache: cache, logger: logger}, nil
}

func (c *Client) LanguageFor(country string) (string, bool) {
	return LanguageFor(country)
}

func cacheKey(language, value string) string {
	return language + "\x00" + value
}

// Translate returns strings translated to language, keyed like the input.
func (c *Client) Translate(ctx context.Context, strs map[string]string, language string) map[string]string {
	out := make(map[string]string, len(strs))
	for k, v := range strs {
		out[k] = v
	}
	if c == nil || c.backend == nil || language == "" || language == sourceLanguage || len(strs) == 0 {
		return out
	}

	keys := make([]string, 0, len(strs))
	for k := range strs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var missingKeys []string
	var missingValues []string
	for _, k := range keys {
		if cached, ok := c.cache.Get(cacheKey(language, strs[k])); ok {
			out[k] = cached
			continue
		}
		missingKeys = append(missingKeys, k)
		missingValues = append(missingValues, strs[k])
	}
	if len(missingValues) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	translated, err := c.backend.translate(ctx, missingValues, language)
	if err != nil {
		c.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "language", Value: language},
			observability.Field{Key: "error", Value: err.Error()},
		), "translation failed, using original strings")
		return out
	}

	for i, k := range missingKeys {
		out[k] = translated[i]
		c.cache.Add(cacheKey(language, missingValues[i]), translated[i])
	}
	return out
}
