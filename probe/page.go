package probe

import "context"

// Page is the DOM access a DOM probe is built on.
// Every method reports whether the selector matched separately from the error.
type Page interface {
	Text(ctx context.Context, selector string) (text string, found bool, err error)
	Attribute(ctx context.Context, selector, name string) (value string, found bool, err error)
	Style(ctx context.Context, selector, property string) (value string, found bool, err error)
	Exists(ctx context.Context, selector string) (bool, error)
	Click(ctx context.Context, selector string) (found bool, err error)
}
