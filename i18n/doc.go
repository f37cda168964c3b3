// Package i18n loads per-language JSON dictionaries and applies them to a
// page.
//
// Dictionaries are nested JSON objects with string leaves, fetched from
// /lang/{code}.json:
//
//	{"greet": {"hello": "Hi {{name}}"}}
//
// A [Service] keeps one dictionary per supported language and tracks the
// active language. [Service.Translate] resolves dot-delimited keys and
// substitutes {{name}} placeholders:
//
//	svc := i18n.New(i18n.NewHTTPLoader(baseURL, nil),
//	    i18n.WithSupported("es", "en"),
//	    i18n.WithPage(page),
//	)
//	if err := svc.Initialize(ctx, "es"); err != nil {
//	    return err
//	}
//	svc.Translate("greet.hello", map[string]any{"name": "Ana"}) // "Hi Ana"
//
// Changing the language with [Service.SetLanguage] updates the page's lang
// metadata, persists the choice under [PreferenceKey], rewrites every
// element tagged with data-i18n, data-i18n-placeholder or data-i18n-title,
// and notifies listeners.
package i18n
