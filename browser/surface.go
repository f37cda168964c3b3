package browser

import (
	"context"
	"fmt"

	"github.com/porticus-lab/pagekit/fault"
)

const showToastScript = `(containerID, t) => {
	let box = document.getElementById(containerID);
	if (!box) {
		box = document.createElement("div");
		box.id = containerID;
		box.setAttribute("aria-live", "polite");
		document.body.appendChild(box);
	}
	const el = document.createElement("div");
	el.id = "toast-" + t.id;
	el.className = "toast toast-" + t.level;
	el.setAttribute("role", "status");
	const msg = document.createElement("span");
	msg.className = "toast-message";
	msg.textContent = t.message;
	el.appendChild(msg);
	if (t.dismissible) {
		const btn = document.createElement("button");
		btn.type = "button";
		btn.className = "toast-close";
		btn.setAttribute("aria-label", "Close");
		btn.textContent = "×";
		btn.addEventListener("click", () => el.remove());
		el.appendChild(btn);
	}
	box.appendChild(el);
	return true;
}`

const dismissToastScript = `(id) => {
	const el = document.getElementById("toast-" + id);
	if (el) el.remove();
	return true;
}`

const toggleScript = `(id, attr, on) => {
	const el = document.getElementById(id);
	if (!el) return false;
	el.toggleAttribute(attr, on);
	return true;
}`

const showBoundaryScript = `(id, message) => {
	let b = document.getElementById(id);
	if (!b) {
		b = document.createElement("div");
		b.id = id;
		b.setAttribute("role", "alert");
		const retry = document.createElement("button");
		retry.type = "button";
		retry.dataset.action = "retry";
		retry.textContent = "Retry";
		retry.addEventListener("click", () => location.reload());
		b.appendChild(retry);
		document.body.appendChild(b);
	}
	let msg = b.querySelector(".error-boundary-message");
	if (!msg) {
		msg = document.createElement("p");
		msg.className = "error-boundary-message";
		b.prepend(msg);
	}
	msg.textContent = message;
	b.hidden = false;
	return true;
}`

type toastArg struct {
	ID          string `json:"id"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

// ShowToast implements fault.Surface.
func (t *Tab) ShowToast(ctx context.Context, toast fault.Toast) error {
	arg := toastArg{
		ID:          toast.ID,
		Level:       string(toast.Level),
		Message:     toast.Message,
		Dismissible: toast.Dismissible,
	}
	if err := t.call(ctx, nil, showToastScript, fault.ElementToastContainer, arg); err != nil {
		return fmt.Errorf("browser: showing toast: %w", err)
	}
	return nil
}

// DismissToast implements fault.Surface.
func (t *Tab) DismissToast(ctx context.Context, id string) error {
	if err := t.call(ctx, nil, dismissToastScript, id); err != nil {
		return fmt.Errorf("browser: dismissing toast: %w", err)
	}
	return nil
}

// Alert implements fault.Surface with window.alert. The dialog is
// accepted automatically and recorded in [Tab.Alerts].
func (t *Tab) Alert(ctx context.Context, message string) error {
	if err := t.call(ctx, nil, `(m) => { window.alert(m); return true; }`, message); err != nil {
		return fmt.Errorf("browser: alert: %w", err)
	}
	return nil
}

// SetHidden implements fault.Surface. A missing element is ignored.
func (t *Tab) SetHidden(ctx context.Context, id string, hidden bool) error {
	return t.toggle(ctx, id, "hidden", hidden)
}

// SetDisabled implements fault.Surface. A missing element is ignored.
func (t *Tab) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return t.toggle(ctx, id, "disabled", disabled)
}

func (t *Tab) toggle(ctx context.Context, id, attr string, on bool) error {
	var found bool
	if err := t.call(ctx, &found, toggleScript, id, attr, on); err != nil {
		return fmt.Errorf("browser: setting %s on #%s: %w", attr, id, err)
	}
	return nil
}

// ShowBoundary implements fault.Surface.
func (t *Tab) ShowBoundary(ctx context.Context, message string) error {
	if err := t.call(ctx, nil, showBoundaryScript, fault.ElementBoundary, message); err != nil {
		return fmt.Errorf("browser: showing boundary: %w", err)
	}
	return nil
}

// HideBoundary implements fault.Surface.
func (t *Tab) HideBoundary(ctx context.Context) error {
	if err := t.toggle(ctx, fault.ElementBoundary, "hidden", true); err != nil {
		return fmt.Errorf("browser: hiding boundary: %w", err)
	}
	return nil
}
