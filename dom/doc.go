// Package dom is an in-memory HTML document that pagekit services can
// render into without a browser.
//
// A [Document] implements the i18n Page interface, rewriting elements
// tagged with data-i18n, data-i18n-placeholder and data-i18n-title. It
// also implements the fault Surface interface, inserting toasts, alert
// dialogs and the error boundary as markup. The result is rendered back
// to HTML with [Document.Render], which makes it suitable for server-side
// localisation of pages.
package dom
