package browser

import (
	"context"
	"fmt"

	"github.com/porticus-lab/pagekit/i18n"
)

var _ i18n.Store = (*LocalStorage)(nil)

const collectKeysScript = `() => {
	const keys = new Set();
	for (const attr of ["data-i18n", "data-i18n-placeholder", "data-i18n-title"]) {
		document.querySelectorAll("[" + attr + "]").forEach((el) => {
			const k = el.getAttribute(attr);
			if (k) keys.add(k);
		});
	}
	return Array.from(keys);
}`

const applyTranslationsScript = `(t) => {
	const each = (attr, fn) => document.querySelectorAll("[" + attr + "]").forEach((el) => {
		const k = el.getAttribute(attr);
		if (k && Object.prototype.hasOwnProperty.call(t, k)) fn(el, t[k]);
	});
	each("data-i18n", (el, v) => { el.textContent = v; });
	each("data-i18n-placeholder", (el, v) => { el.setAttribute("placeholder", v); });
	each("data-i18n-title", (el, v) => { el.setAttribute("title", v); });
	return true;
}`

// SetLang implements i18n.Page.
func (t *Tab) SetLang(ctx context.Context, code string) error {
	if err := t.call(ctx, nil, `(c) => { document.documentElement.lang = c; return true; }`, code); err != nil {
		return fmt.Errorf("browser: setting lang: %w", err)
	}
	return nil
}

// Translate implements i18n.Page. Keys are collected from the live
// document, resolved with lookup and written back in one pass.
func (t *Tab) Translate(ctx context.Context, lookup func(key string) string) error {
	var keys []string
	if err := t.call(ctx, &keys, collectKeysScript); err != nil {
		return fmt.Errorf("browser: collecting translation keys: %w", err)
	}

	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = lookup(k)
	}
	if err := t.call(ctx, nil, applyTranslationsScript, values); err != nil {
		return fmt.Errorf("browser: applying translations: %w", err)
	}
	return nil
}

// LocalStorage is the window.localStorage of a tab.
type LocalStorage struct {
	tab *Tab
}

// Storage returns the tab's localStorage.
func (t *Tab) Storage() *LocalStorage {
	return &LocalStorage{tab: t}
}

// Get implements i18n.Store.
func (s *LocalStorage) Get(ctx context.Context, key string) (string, error) {
	var v string
	if err := s.tab.call(ctx, &v, `(k) => window.localStorage.getItem(k) ?? ""`, key); err != nil {
		return "", fmt.Errorf("browser: reading localStorage: %w", err)
	}
	return v, nil
}

// Set implements i18n.Store.
func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	if err := s.tab.call(ctx, nil, `(k, v) => { window.localStorage.setItem(k, v); return true; }`, key, value); err != nil {
		return fmt.Errorf("browser: writing localStorage: %w", err)
	}
	return nil
}
