// Package pagekit bundles three page-side services under a single import:
//
//   - [fault]: error dispatch by kind, with toast, alert and boundary UI
//   - [export]: element-to-PDF export with pre-flight checks
//   - [i18n]: JSON dictionaries applied to tagged page text and attributes
//
// A page is either a static document parsed from HTML ([dom.Document]) or
// a live headless Chrome tab ([browser.Tab]). Both implement every page
// interface the services need.
//
// A [Shell] constructs the services for one page and owns them:
//
//	doc, err := dom.ParseString(html)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sh := pagekit.New(i18n.FSLoader{FS: os.DirFS("web")}, pagekit.WithPage(doc))
//	if err := sh.Start(ctx, "es"); err != nil {
//	    log.Fatal(err)
//	}
//	defer sh.Close()
//
//	sh.Faults.Handle(ctx, fault.KindAPI, err)
//	title := sh.Languages.Translate("home.title", nil)
//
// Export needs a page that can measure and print elements, which only a
// browser tab does:
//
//	b, err := browser.New(browser.WithAutoDownload())
//	tab, err := b.OpenFile(ctx, "report.html")
//	sh := pagekit.New(loader, pagekit.WithPage(tab), pagekit.WithExporter(tab, tab))
//	res, err := sh.Exports.GeneratePDF(ctx, "#report", nil)
package pagekit
