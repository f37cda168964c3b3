package dom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/porticus-lab/pagekit/fault"
	"github.com/porticus-lab/pagekit/i18n"
)

var (
	_ fault.Surface = (*Document)(nil)
	_ i18n.Page     = (*Document)(nil)
)

// Attributes marking translation targets.
const (
	AttrText        = "data-i18n"
	AttrPlaceholder = "data-i18n-placeholder"
	AttrTitle       = "data-i18n-title"
)

// AlertDialogID is the id of the dialog element inserted by [Document.Alert].
const AlertDialogID = "alert-dialog"

// ErrNoBody is returned when a document has no body element to render into.
var ErrNoBody = errors.New("dom: document has no body")

// Document is a parsed HTML document. It is safe for concurrent use.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parsing document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: rendering document: %w", err)
	}
	return nil
}

// String returns the rendered document.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// Lang returns the lang attribute of the html element.
func (d *Document) Lang() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := byAtom(d.root, atom.Html); n != nil {
		v, _ := attr(n, "lang")
		return v
	}
	return ""
}

// Text returns the text content of the element with the given id.
func (d *Document) Text(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := byID(d.root, id)
	if n == nil {
		return "", false
	}
	return textContent(n), true
}

// Attr returns an attribute of the element with the given id.
func (d *Document) Attr(id, key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := byID(d.root, id)
	if n == nil {
		return "", false
	}
	return attr(n, key)
}

// SetLang sets the lang attribute of the html element.
func (d *Document) SetLang(_ context.Context, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := byAtom(d.root, atom.Html)
	if n == nil {
		return errors.New("dom: document has no html element")
	}
	setAttr(n, "lang", code)
	return nil
}

// Translate rewrites every tagged element. The text of data-i18n elements
// is replaced; data-i18n-placeholder and data-i18n-title set the
// placeholder and title attributes.
func (d *Document) Translate(_ context.Context, lookup func(key string) string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if key, ok := attr(n, AttrText); ok && key != "" {
			setText(n, lookup(key))
		}
		if key, ok := attr(n, AttrPlaceholder); ok && key != "" {
			setAttr(n, "placeholder", lookup(key))
		}
		if key, ok := attr(n, AttrTitle); ok && key != "" {
			setAttr(n, "title", lookup(key))
		}
		return true
	})
	return nil
}

func toastID(id string) string {
	return "toast-" + id
}

// ShowToast appends a toast to the toast container, creating the
// container at the end of the body if needed.
func (d *Document) ShowToast(_ context.Context, t fault.Toast) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	container := byID(d.root, fault.ElementToastContainer)
	if container == nil {
		body := byAtom(d.root, atom.Body)
		if body == nil {
			return ErrNoBody
		}
		container = element(atom.Div, "id", fault.ElementToastContainer, "aria-live", "polite")
		body.AppendChild(container)
	}

	toast := element(atom.Div,
		"id", toastID(t.ID),
		"class", "toast toast-"+string(t.Level),
		"role", "status",
	)
	if t.Duration > 0 {
		setAttr(toast, "data-expires-ms", strconv.FormatInt(t.Duration.Milliseconds(), 10))
	}
	msg := element(atom.Span, "class", "toast-message")
	setText(msg, t.Message)
	toast.AppendChild(msg)

	if t.Dismissible {
		closeBtn := element(atom.Button,
			"type", "button",
			"class", "toast-close",
			"aria-label", "Close",
			"data-dismiss", toastID(t.ID),
		)
		setText(closeBtn, "×")
		toast.AppendChild(closeBtn)
	}
	container.AppendChild(toast)
	return nil
}

// DismissToast removes the toast with the given id. Dismissing a toast
// that is already gone is not an error.
func (d *Document) DismissToast(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := byID(d.root, toastID(id)); n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return nil
}

// Toasts returns the messages of the toasts currently in the document.
func (d *Document) Toasts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []string
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, "toast-message") {
			out = append(out, textContent(n))
		}
		return true
	})
	return out
}

// Alert inserts an open modal dialog carrying message, replacing any
// previous one.
func (d *Document) Alert(_ context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	body := byAtom(d.root, atom.Body)
	if body == nil {
		return ErrNoBody
	}
	if old := byID(d.root, AlertDialogID); old != nil && old.Parent != nil {
		old.Parent.RemoveChild(old)
	}

	dialog := element(atom.Dialog, "id", AlertDialogID, "role", "alertdialog", "open", "")
	p := element(atom.P)
	setText(p, message)
	dialog.AppendChild(p)

	ok := element(atom.Button, "type", "button", "data-action", "close-alert")
	setText(ok, "OK")
	dialog.AppendChild(ok)

	body.AppendChild(dialog)
	return nil
}

// SetHidden toggles the hidden attribute of the element with the given
// id. A missing element is ignored.
func (d *Document) SetHidden(_ context.Context, id string, hidden bool) error {
	return d.toggle(id, "hidden", hidden)
}

// SetDisabled toggles the disabled attribute of the element with the
// given id. A missing element is ignored.
func (d *Document) SetDisabled(_ context.Context, id string, disabled bool) error {
	return d.toggle(id, "disabled", disabled)
}

func (d *Document) toggle(id, key string, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := byID(d.root, id)
	if n == nil {
		return nil
	}
	if on {
		setAttr(n, key, "")
	} else {
		removeAttr(n, key)
	}
	return nil
}

// ShowBoundary reveals the error boundary with message, creating it at
// the end of the body if the page does not declare one.
func (d *Document) ShowBoundary(_ context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := byID(d.root, fault.ElementBoundary)
	if b == nil {
		body := byAtom(d.root, atom.Body)
		if body == nil {
			return ErrNoBody
		}
		b = element(atom.Div, "id", fault.ElementBoundary, "role", "alert")
		msg := element(atom.P, "class", "error-boundary-message")
		b.AppendChild(msg)
		retry := element(atom.Button, "type", "button", "data-action", "retry")
		setText(retry, "Retry")
		b.AppendChild(retry)
		body.AppendChild(b)
	}

	msg := findElement(b, func(n *html.Node) bool { return hasClass(n, "error-boundary-message") })
	if msg == nil {
		msg = element(atom.P, "class", "error-boundary-message")
		b.InsertBefore(msg, b.FirstChild)
	}
	setText(msg, message)
	removeAttr(b, "hidden")
	return nil
}

// HideBoundary hides the error boundary.
func (d *Document) HideBoundary(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if b := byID(d.root, fault.ElementBoundary); b != nil {
		setAttr(b, "hidden", "")
	}
	return nil
}
