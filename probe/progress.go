package probe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hostplay/hostplay/util"
)

// ProgressKind names the raw representation of a progress indicator.
type ProgressKind string

const (
	// ProgressAria reads aria-valuenow relative to aria-valuemax on a slider.
	ProgressAria ProgressKind = "aria"

	// ProgressStyle reads an inline positional percentage such as left: 30%.
	ProgressStyle ProgressKind = "style"

	// ProgressTransform reads a 2-D scale transform such as scaleX(0.3).
	ProgressTransform ProgressKind = "transform"
)

// ProgressKinds lists the supported representations.
var ProgressKinds = []ProgressKind{ProgressAria, ProgressStyle, ProgressTransform}

// ProgressSource describes where a backend keeps its progress indicator.
type ProgressSource struct {
	Kind ProgressKind

	// Property is the style property read by ProgressStyle. Defaults to "left".
	Property string
}

// RawProgress is a progress reading as found on the page.
type RawProgress struct {
	Value string
	Max   string
	Style string
}

var (
	scaleXRe = regexp.MustCompile(`scaleX\(\s*(?P<x>[-+]?[0-9]*\.?[0-9]+(?:e[-+]?[0-9]+)?)\s*\)`)
	scaleRe  = regexp.MustCompile(`scale\(\s*(?P<x>[-+]?[0-9]*\.?[0-9]+(?:e[-+]?[0-9]+)?)\s*(?:,[^)]*)?\)`)
	matrixRe = regexp.MustCompile(`matrix\(\s*(?P<x>[-+]?[0-9]*\.?[0-9]+(?:e[-+]?[0-9]+)?)\s*,`)
)

// NormalizeProgress converts a raw reading to the 0..100 scale.
func NormalizeProgress(kind ProgressKind, raw RawProgress) (float64, error) {
	switch kind {
	case ProgressAria:
		return normalizeAria(raw.Value, raw.Max)
	case ProgressStyle:
		return normalizePercent(raw.Style)
	case ProgressTransform:
		return normalizeTransform(raw.Style)
	default:
		return 0, fmt.Errorf("unknown progress kind %q", kind)
	}
}

func normalizeAria(value, max string) (float64, error) {
	now, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("aria-valuenow %q: %w", value, err)
	}

	total := 100.0
	if max = strings.TrimSpace(max); max != "" {
		total, err = strconv.ParseFloat(max, 64)
		if err != nil {
			return 0, fmt.Errorf("aria-valuemax %q: %w", max, err)
		}
	}

	if total <= 0 {
		return 0, nil
	}

	return util.Clamp(now/total*100, 0, 100), nil
}

func normalizePercent(style string) (float64, error) {
	style = strings.TrimSpace(style)
	if !strings.HasSuffix(style, "%") {
		return 0, fmt.Errorf("not a percentage: %q", style)
	}

	percent, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(style, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("percentage %q: %w", style, err)
	}

	return util.Clamp(percent, 0, 100), nil
}

func normalizeTransform(style string) (float64, error) {
	if strings.TrimSpace(style) == "none" {
		return 0, nil
	}

	for _, re := range []*regexp.Regexp{scaleXRe, scaleRe, matrixRe} {
		if !re.MatchString(style) {
			continue
		}

		factor, err := strconv.ParseFloat(util.ReGroups(re, style)["x"], 64)
		if err != nil {
			return 0, fmt.Errorf("transform %q: %w", style, err)
		}

		return util.Clamp(factor*100, 0, 100), nil
	}

	return 0, fmt.Errorf("unsupported transform: %q", style)
}
