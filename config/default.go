package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Hostplay + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// TypeName returns the string representation of the field's underlying value type.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts raw CLI arguments into a value of the field's type.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		v, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value: %s", raw[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return v, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", f.Key)
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.BackendDefault, "", "Backend to drive when --backend is not given.\nType \"hostplay backends list\" to show available backends")
	register(key.BrowserHeadless, false, "Run the controlled browser without a window")
	register(key.BrowserExecPath, "", "Path to the Chrome/Chromium executable.\nSearched in PATH when empty")
	register(key.BrowserRemoteURL, "", "DevTools websocket URL of an already running browser.\nWhen set, no browser is launched")
	register(key.BrowserUserDataDir, "", "Browser profile directory, so backend logins persist.\nDefaults to the profile directory shown by \"hostplay where\"")
	register(key.ServerAddress, "localhost:52846", "Address the controller channel listens on")
	register(key.ServerAuth, false, "Require the keyring token as a bearer token on the controller channel")
	register(key.DriverPollInterval, 100, "Interval between title and transport polls, in milliseconds")
	register(key.DriverPollRounds, 40, "Maximum number of title and transport polls per wait")
	register(key.DriverAfterPauseDelay, 100, "Delay after pausing before clicking next, in milliseconds")
	register(key.DriverMovementInterval, 50, "Interval between progress samples when confirming movement, in milliseconds")
	register(key.DriverMovementRounds, 50, "Maximum progress samples per movement attempt")
	register(key.DriverMovementAttempts, 2, "Number of times next is clicked before movement is declared failed")
	register(key.DriverMovementDistinct, 4, "Distinct progress values required to confirm movement")
	register(key.DriverPauseRounds, 10, "Maximum transport polls while waiting for the paused state")
	register(key.DriverQueueSize, 8, "Number of commands that may wait behind the one in flight")
	register(key.WatchdogInterval, 400, "Interval between track-end progress checks, in milliseconds")
	register(key.WatchdogThreshold, 1.0, "Remaining progress, in percent, under which a track counts as ended")
	register(key.HistorySave, true, "Record tracks played while serving.\nShow them with \"hostplay history\"")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release when showing help and version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
