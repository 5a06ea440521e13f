package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/hostplay/hostplay/log"
)

// Page is the backend tab. It implements probe.Page by evaluating small DOM scripts.
type Page struct {
	ctx context.Context

	detached chan struct{}
	once     sync.Once
}

// Detached is closed when the tab navigates away, crashes or is detached.
func (p *Page) Detached() <-chan struct{} {
	return p.detached
}

func (p *Page) detach(reason string) {
	p.once.Do(func() {
		log.Warnf("page detached: %s", reason)
		close(p.detached)
	})
}

type lookup struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

// script wraps body into an expression evaluated against the first element matching selector.
// Inside body the element is bound to el and the extra argument, if any, to arg.
func script(selector, arg, body string) string {
	quotedSelector, _ := json.Marshal(selector)
	quotedArg, _ := json.Marshal(arg)

	return fmt.Sprintf(`(function(sel, arg) {
	const el = document.querySelector(sel);
	if (!el) {
		return {found: false, value: ""};
	}
	return {found: true, value: String((function(el, arg) { %s })(el, arg) ?? "")};
})(%s, %s)`, body, quotedSelector, quotedArg)
}

func (p *Page) eval(ctx context.Context, expression string) (lookup, error) {
	runCtx, cancel := bind(p.ctx, ctx)
	defer cancel()

	var result lookup
	if err := chromedp.Run(runCtx, chromedp.Evaluate(expression, &result)); err != nil {
		return lookup{}, err
	}

	return result, nil
}

const (
	textBody      = `return el.textContent;`
	attributeBody = `return el.getAttribute(arg);`
	styleBody     = `return el.style.getPropertyValue(arg) || getComputedStyle(el).getPropertyValue(arg);`
	existsBody    = `return "";`
	clickBody     = `el.click(); return "";`
)

func (p *Page) Text(ctx context.Context, selector string) (string, bool, error) {
	r, err := p.eval(ctx, script(selector, "", textBody))
	return r.Value, r.Found, err
}

func (p *Page) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	r, err := p.eval(ctx, script(selector, name, attributeBody))
	return r.Value, r.Found, err
}

func (p *Page) Style(ctx context.Context, selector, property string) (string, bool, error) {
	r, err := p.eval(ctx, script(selector, property, styleBody))
	return r.Value, r.Found, err
}

func (p *Page) Exists(ctx context.Context, selector string) (bool, error) {
	r, err := p.eval(ctx, script(selector, "", existsBody))
	return r.Found, err
}

func (p *Page) Click(ctx context.Context, selector string) (bool, error) {
	r, err := p.eval(ctx, script(selector, "", clickBody))
	return r.Found, err
}
