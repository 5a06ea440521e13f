package probe

import (
	"context"
	"errors"
)

var errDetached = errors.New("page detached")

type element struct {
	text  string
	attrs map[string]string
	style map[string]string
}

type fakePage struct {
	elements map[string]*element
	clicks   []string
	detached bool
}

func newFakePage() *fakePage {
	return &fakePage{elements: make(map[string]*element)}
}

func (p *fakePage) set(selector string, el *element) *fakePage {
	p.elements[selector] = el
	return p
}

func (p *fakePage) lookup(selector string) (*element, bool, error) {
	if p.detached {
		return nil, false, errDetached
	}

	el, ok := p.elements[selector]
	return el, ok, nil
}

func (p *fakePage) Text(_ context.Context, selector string) (string, bool, error) {
	el, ok, err := p.lookup(selector)
	if !ok || err != nil {
		return "", ok, err
	}

	return el.text, true, nil
}

func (p *fakePage) Attribute(_ context.Context, selector, name string) (string, bool, error) {
	el, ok, err := p.lookup(selector)
	if !ok || err != nil {
		return "", ok, err
	}

	return el.attrs[name], true, nil
}

func (p *fakePage) Style(_ context.Context, selector, property string) (string, bool, error) {
	el, ok, err := p.lookup(selector)
	if !ok || err != nil {
		return "", ok, err
	}

	return el.style[property], true, nil
}

func (p *fakePage) Exists(_ context.Context, selector string) (bool, error) {
	_, ok, err := p.lookup(selector)
	return ok, err
}

func (p *fakePage) Click(_ context.Context, selector string) (bool, error) {
	_, ok, err := p.lookup(selector)
	if ok {
		p.clicks = append(p.clicks, selector)
	}

	return ok, err
}
