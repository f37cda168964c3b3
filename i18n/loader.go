package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Loader retrieves the dictionary for one language.
type Loader interface {
	Load(ctx context.Context, code string) (Dictionary, error)
}

// dictionaryPath is where the dictionary for code lives, relative to the
// site root or filesystem root.
func dictionaryPath(code string) string {
	return path.Join("lang", code+".json")
}

// HTTPLoader fetches dictionaries with GET {BaseURL}/lang/{code}.json.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPLoader returns an HTTPLoader. A nil client uses
// http.DefaultClient.
func NewHTTPLoader(baseURL string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{BaseURL: baseURL, Client: client}
}

// Load implements [Loader].
func (l *HTTPLoader) Load(ctx context.Context, code string) (Dictionary, error) {
	u := strings.TrimRight(l.BaseURL, "/") + "/lang/" + url.PathEscape(code) + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Code: code, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Code: code, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Code: code, URL: u, Status: resp.StatusCode}
	}

	var d Dictionary
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("i18n: decoding %s: %w", u, err)
	}
	return d, nil
}

// FSLoader reads dictionaries from lang/{code}.json inside a filesystem,
// such as an embed.FS or os.DirFS.
type FSLoader struct {
	FS fs.FS
}

// Load implements [Loader].
func (l FSLoader) Load(_ context.Context, code string) (Dictionary, error) {
	name := dictionaryPath(code)
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, &FetchError{Code: code, URL: name, Err: err}
	}

	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("i18n: decoding %s: %w", name, err)
	}
	return d, nil
}
