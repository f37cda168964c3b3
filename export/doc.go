// Package export renders a single page element to PDF.
//
// Before anything is rendered, [Service.GeneratePDF] checks that the
// element exists, has content, is visible and has a non-zero size. It then
// waits for the element's images to finish loading. Caller options are
// merged over [DefaultOptions], and the remaining work goes to a
// [Renderer]:
//
//	svc := export.New(tab, tab)
//	res, err := svc.GeneratePDF(ctx, "#invoice", &export.Options{
//	    Page: export.PageConfig{Orientation: export.Landscape},
//	})
//
//	err = svc.SavePDF(ctx, "#invoice", "invoice-42.pdf", nil)
//
// The browser package provides a Chrome tab that implements both
// [Inspector] and [Renderer].
package export
