// Package browser drives headless Chrome through the Chrome DevTools
// Protocol and exposes its tabs as pagekit pages.
//
// A [Browser] manages one browser process that is reused across tabs:
//
//	b, err := browser.New(browser.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	tab, err := b.Open(ctx, "http://localhost:8080/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tab.Close()
//
// A [Tab] implements the export Inspector and Renderer, the fault Surface
// and the i18n Page interfaces. [Tab.Storage] returns the page's
// localStorage as an i18n Store.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload].
package browser
