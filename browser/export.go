package browser

import (
	"context"
	"fmt"

	"github.com/porticus-lab/pagekit/export"
)

const inspectScript = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return {found: false};
	const rect = el.getBoundingClientRect();
	let visible = el.getClientRects().length > 0;
	for (let n = el; visible && n && n.nodeType === 1; n = n.parentElement) {
		const s = getComputedStyle(n);
		if (s.display === "none" || s.visibility === "hidden" || s.opacity === "0") visible = false;
	}
	return {
		found: true,
		empty: el.innerHTML.trim() === "",
		visible: visible,
		width: rect.width,
		height: rect.height,
	};
}`

const waitImagesScript = `(async (sel) => {
	const el = document.querySelector(sel);
	if (!el) return [];
	const imgs = Array.from(el.querySelectorAll("img"));
	const broken = await Promise.all(imgs.map((img) => {
		const src = img.currentSrc || img.src;
		if (img.complete) return img.naturalWidth > 0 ? "" : src;
		return new Promise((resolve) => {
			img.addEventListener("load", () => resolve(""), {once: true});
			img.addEventListener("error", () => resolve(src), {once: true});
		});
	}));
	return broken.filter((s) => s !== "");
})`

const snapshotScript = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return "";
	const root = document.documentElement;
	return "<!DOCTYPE html><html lang=\"" + (root.lang || "") + "\"><head>" +
		"<base href=\"" + document.baseURI + "\">" +
		(document.head ? document.head.innerHTML : "") +
		"</head><body>" + el.outerHTML + "</body></html>";
}`

type elementState struct {
	Found   bool    `json:"found"`
	Empty   bool    `json:"empty"`
	Visible bool    `json:"visible"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Inspect implements export.Inspector using the element's computed style
// and layout box.
func (t *Tab) Inspect(ctx context.Context, selector string) (export.ElementState, error) {
	var st elementState
	if err := t.call(ctx, &st, inspectScript, selector); err != nil {
		return export.ElementState{}, fmt.Errorf("browser: inspecting %q: %w", selector, err)
	}
	return export.ElementState(st), nil
}

// WaitImages implements export.Inspector. It resolves once every image in
// the element has loaded or failed.
func (t *Tab) WaitImages(ctx context.Context, selector string) error {
	arg, err := jsonArg(selector)
	if err != nil {
		return err
	}

	var broken []string
	if err := t.evalAsync(ctx, waitImagesScript+"("+arg+")", &broken); err != nil {
		return fmt.Errorf("browser: waiting for images in %q: %w", selector, err)
	}
	if len(broken) > 0 {
		return &export.ImageLoadError{Selector: selector, Src: broken[0]}
	}
	return nil
}

// Render implements export.Renderer. The element is copied with the
// document head into a standalone page, which is printed in a throwaway
// tab.
func (t *Tab) Render(ctx context.Context, selector string, pg export.PageConfig) ([]byte, error) {
	var html string
	if err := t.call(ctx, &html, snapshotScript, selector); err != nil {
		return nil, fmt.Errorf("browser: copying %q: %w", selector, err)
	}
	if html == "" {
		return nil, &export.ElementError{Selector: selector, Problem: export.ProblemMissing}
	}
	return t.browser.PrintHTML(ctx, html, pg)
}
