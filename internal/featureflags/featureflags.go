package featureflags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// EnvPrefix starts every environment variable that toggles a feature.
const EnvPrefix = "TRIPGRID_FEATURE_"

// Stage indicates the lifecycle of a feature flag.
type Stage string

const (
	StageExperimental Stage = "experimental"
	StageBeta         Stage = "beta"
	StageGA           Stage = "ga"
)

// Name is the canonical identifier for a feature flag (kebab-case).
type Name string

const (
	// FeatureConfiguredColumnWidths lets a column's configured width act as
	// its default width beneath user preferences.
	FeatureConfiguredColumnWidths Name = "configured-column-widths"
	// FeatureBadgeColors colours badge cells from their wrapper metadata.
	FeatureBadgeColors Name = "badge-colors"
)

// Definition tracks the metadata for a feature flag.
type Definition struct {
	Name        Name
	Description string
	Stage       Stage
	Default     bool
}

var registry = map[Name]Definition{
	FeatureConfiguredColumnWidths: {
		Name:        FeatureConfiguredColumnWidths,
		Description: "Use the width declared in the column configuration before falling back to the type minimum.",
		Stage:       StageExperimental,
		Default:     false,
	},
	FeatureBadgeColors: {
		Name:        FeatureBadgeColors,
		Description: "Colour badge cells using the color carried next to the cell value.",
		Stage:       StageBeta,
		Default:     true,
	},
}

// ErrUnknownFeature is returned when a caller references a flag that has not been registered.
var ErrUnknownFeature = errors.New("unknown feature flag")

// DefinitionByName returns the definition for the provided feature.
func DefinitionByName(name Name) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Definitions returns the full set of registered flags in alphabetical order.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Flags captures the resolved state of all feature flags for one invocation.
type Flags struct {
	values map[Name]bool
}

// Enabled reports whether the provided feature is on.
func (f Flags) Enabled(name Name) bool {
	if f.values == nil {
		return false
	}
	return f.values[name]
}

// EnabledNames returns the enabled flag names in alphabetical order.
func (f Flags) EnabledNames() []Name {
	names := make([]Name, 0, len(f.values))
	for name, on := range f.values {
		if on {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// EnvVar returns the environment variable that toggles the flag
// (e.g. TRIPGRID_FEATURE_BADGE_COLORS).
func (d Definition) EnvVar() string {
	upper := strings.ToUpper(string(d.Name))
	return EnvPrefix + strings.ReplaceAll(upper, "-", "_")
}

// Resolve applies defaults, then each source in order. A token prefixed
// with "-" or "no-" turns a flag off, so later sources can disable a
// default-on feature.
func Resolve(sources ...[]string) (Flags, error) {
	values := make(map[Name]bool, len(registry))
	for _, def := range registry {
		values[def.Name] = def.Default
	}
	for _, source := range sources {
		for _, token := range splitTokens(source) {
			on := true
			switch {
			case strings.HasPrefix(token, "-"):
				token, on = strings.TrimPrefix(token, "-"), false
			case strings.HasPrefix(strings.ToLower(token), "no-"):
				token, on = token[len("no-"):], false
			}
			name := normalizeName(token)
			if _, ok := registry[name]; !ok {
				return Flags{}, fmt.Errorf("%w: %s", ErrUnknownFeature, token)
			}
			values[name] = on
		}
	}
	return Flags{values: values}, nil
}

// FromEnv scans environ (the process environment when nil) for
// TRIPGRID_FEATURE_* variables and returns tokens for Resolve. Falsy values
// produce disabling tokens.
func FromEnv(environ []string) []string {
	if environ == nil {
		environ = os.Environ()
	}
	var tokens []string
	for _, entry := range environ {
		key, val, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, EnvPrefix), "_", "-"))
		switch {
		case isTruthy(val):
			tokens = append(tokens, name)
		case isFalsy(val):
			tokens = append(tokens, "-"+name)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// ContextWithFlags stores the resolved flags on the provided context.
func ContextWithFlags(ctx context.Context, flags Flags) context.Context {
	return context.WithValue(ctx, ctxKey{}, flags)
}

// FromContext extracts the flag set from ctx. Without stored flags the
// registry defaults apply.
func FromContext(ctx context.Context) Flags {
	if ctx != nil {
		if flags, ok := ctx.Value(ctxKey{}).(Flags); ok {
			return flags
		}
	}
	flags, _ := Resolve()
	return flags
}

type ctxKey struct{}

func splitTokens(values []string) []string {
	var tokens []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

func normalizeName(raw string) Name {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return Name(strings.ReplaceAll(raw, "_", "-"))
}

func isTruthy(val string) bool {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func isFalsy(val string) bool {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "0", "f", "false", "n", "no", "off":
		return true
	default:
		return false
	}
}
