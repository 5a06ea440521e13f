package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostplay/hostplay/log"
	"github.com/samber/mo"
)

// Selectors locate the elements of a backend's play bar.
// Play matches the control only while the player is paused and Pause only while it plays,
// so a single toggle button is described by two attribute-qualified selectors.
type Selectors struct {
	Title         string `json:"title"`
	Artist        string `json:"artist,omitempty"`
	Play          string `json:"play"`
	Pause         string `json:"pause"`
	Next          string `json:"next"`
	Previous      string `json:"previous,omitempty"`
	StartPlaylist string `json:"start_playlist,omitempty"`
	Progress      string `json:"progress"`
}

// For returns the selector that invokes the action.
func (s Selectors) For(action Action) string {
	switch action {
	case Next:
		return s.Next
	case Previous:
		return s.Previous
	case Play:
		return s.Play
	case Pause:
		return s.Pause
	case StartPlaylist:
		return s.StartPlaylist
	default:
		return ""
	}
}

// DOM is a Probe reading a page through CSS selectors.
type DOM struct {
	page      Page
	selectors Selectors
	progress  ProgressSource
}

// NewDOM creates a DOM probe over the page.
func NewDOM(page Page, selectors Selectors, progress ProgressSource) *DOM {
	if progress.Kind == ProgressStyle && progress.Property == "" {
		progress.Property = "left"
	}

	return &DOM{
		page:      page,
		selectors: selectors,
		progress:  progress,
	}
}

func (d *DOM) text(ctx context.Context, selector string) (mo.Option[string], error) {
	if selector == "" {
		return mo.None[string](), nil
	}

	text, found, err := d.page.Text(ctx, selector)
	if err != nil {
		return mo.None[string](), err
	}

	text = strings.TrimSpace(text)
	if !found || text == "" {
		return mo.None[string](), nil
	}

	return mo.Some(text), nil
}

// Title reads the track title. An empty title counts as absent.
func (d *DOM) Title(ctx context.Context) (mo.Option[string], error) {
	return d.text(ctx, d.selectors.Title)
}

// Artist reads the track artist. Backends without an artist selector always report none.
func (d *DOM) Artist(ctx context.Context) (mo.Option[string], error) {
	return d.text(ctx, d.selectors.Artist)
}

// TransportState classifies the player by which of the play and pause controls are present.
func (d *DOM) TransportState(ctx context.Context) (TransportState, error) {
	pause, err := d.exists(ctx, d.selectors.Pause)
	if err != nil {
		return Unknown, err
	}

	play, err := d.exists(ctx, d.selectors.Play)
	if err != nil {
		return Unknown, err
	}

	switch {
	case pause && play:
		return Unknown, nil
	case pause:
		return Playing, nil
	case play:
		return Paused, nil
	default:
		return Loading, nil
	}
}

func (d *DOM) exists(ctx context.Context, selector string) (bool, error) {
	if selector == "" {
		return false, nil
	}

	return d.page.Exists(ctx, selector)
}

// Progress reads and normalizes the progress indicator.
func (d *DOM) Progress(ctx context.Context) (float64, error) {
	selector := d.selectors.Progress
	if selector == "" {
		return 0, fmt.Errorf("progress: %w", ErrSelectorNotFound)
	}

	var (
		raw   RawProgress
		found bool
		err   error
	)

	switch d.progress.Kind {
	case ProgressAria:
		raw.Value, found, err = d.page.Attribute(ctx, selector, "aria-valuenow")
		if err == nil && found {
			raw.Max, _, err = d.page.Attribute(ctx, selector, "aria-valuemax")
		}
	case ProgressStyle:
		raw.Style, found, err = d.page.Style(ctx, selector, d.progress.Property)
	case ProgressTransform:
		raw.Style, found, err = d.page.Style(ctx, selector, "transform")
	default:
		return 0, fmt.Errorf("unknown progress kind %q", d.progress.Kind)
	}

	if err != nil {
		return 0, err
	}

	if !found {
		return 0, fmt.Errorf("progress %s: %w", selector, ErrSelectorNotFound)
	}

	return NormalizeProgress(d.progress.Kind, raw)
}

// Invoke clicks the control bound to the action.
func (d *DOM) Invoke(ctx context.Context, action Action) error {
	selector := d.selectors.For(action)
	if selector == "" {
		return fmt.Errorf("%s: no selector: %w", action, ErrSelectorNotFound)
	}

	log.Debugf("clicking %s (%s)", action, selector)

	found, err := d.page.Click(ctx, selector)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	if !found {
		log.Warnf("%s control not found: %s", action, selector)
		return fmt.Errorf("%s %s: %w", action, selector, ErrSelectorNotFound)
	}

	return nil
}
