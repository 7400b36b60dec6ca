package localemap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"net/http"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawDictionary maps flat message keys to template strings, as produced by
// a Loader for one (locale, base file name) pair. Nested structures in the
// source files are flattened with dot notation before they reach the merger.
type RawDictionary map[string]string

// Loader fetches the raw dictionary for one (locale, base file name) pair.
//
// The locale argument is the exact string configured in the supported set
// (so "en-US" addresses an en-US path segment, not a normalized form).
// Implementations must be idempotent and side-effect-free on failure.
// A missing asset is reported as ErrNotFound; any other failure as
// ErrTransport. Both sentinels must be detectable with errors.Is.
type Loader interface {
	Fetch(ctx context.Context, locale, baseName string) (RawDictionary, error)
}

// decodeMessages parses a JSON or YAML document into a flattened dictionary.
func decodeMessages(data []byte, unmarshal func([]byte, any) error) (RawDictionary, error) {
	var nested map[string]any
	if err := unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	return flattenMessages(nested, ""), nil
}

// flattenMessages converts a nested message structure into a flat
// dot-notated dictionary. Non-string leaves are stringified.
func flattenMessages(data map[string]any, prefix string) RawDictionary {
	result := make(RawDictionary, len(data))

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenMessages(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// FSLoader reads translation assets from an fs.FS.
//
// File convention: {locale}/{baseName}.json, with .yaml and .yml accepted
// as alternatives when no JSON file exists.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a filesystem-backed loader. The fs.FS root must
// contain the locale directories directly, e.g.:
//
//	en/common.json
//	en-US/common.json
//	pt-BR/common.json
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a filesystem-backed loader rooted at an OS path.
func NewDirLoader(root string) *FSLoader {
	return &FSLoader{fsys: os.DirFS(root)}
}

// Fetch implements Loader.
func (l *FSLoader) Fetch(_ context.Context, locale, baseName string) (RawDictionary, error) {
	type variant struct {
		ext       string
		unmarshal func([]byte, any) error
	}
	variants := []variant{
		{".json", json.Unmarshal},
		{".yaml", yaml.Unmarshal},
		{".yml", yaml.Unmarshal},
	}

	for _, v := range variants {
		name := locale + "/" + baseName + v.ext
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %s", ErrTransport, name, err)
		}
		return decodeMessages(data, v.unmarshal)
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, locale, baseName)
}

// HTTPLoader fetches translation assets over HTTP.
//
// URL convention: {baseURL}/{locale}/{baseName}.json. Responses are decoded
// as JSON regardless of content type. A 404 maps to ErrNotFound; any other
// non-2xx status or network failure maps to ErrTransport.
type HTTPLoader struct {
	client  *http.Client
	baseURL string
}

// NewHTTPLoader creates an HTTP-backed loader. If client is nil,
// http.DefaultClient is used.
func NewHTTPLoader(baseURL string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch implements Loader.
func (l *HTTPLoader) Fetch(ctx context.Context, locale, baseName string) (RawDictionary, error) {
	assetURL := l.baseURL + "/" + url.PathEscape(locale) + "/" + baseName + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, assetURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned %s", ErrTransport, assetURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %s", ErrTransport, assetURL, err)
	}

	return decodeMessages(data, json.Unmarshal)
}

var (
	_ Loader = (*FSLoader)(nil)
	_ Loader = (*HTTPLoader)(nil)
)
