package featureflags

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	flags, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if flags.Enabled(FeatureConfiguredColumnWidths) {
		t.Fatalf("%s should default to off", FeatureConfiguredColumnWidths)
	}
	if !flags.Enabled(FeatureBadgeColors) {
		t.Fatalf("%s should default to on", FeatureBadgeColors)
	}
}

func TestResolveLaterSourcesWin(t *testing.T) {
	flags, err := Resolve([]string{"configured_column_widths, no-badge-colors"}, []string{"-configured-column-widths"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if flags.Enabled(FeatureConfiguredColumnWidths) || flags.Enabled(FeatureBadgeColors) {
		t.Fatalf("expected both flags off, got %v", flags.EnabledNames())
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve([]string{"not-a-real-flag"})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	env := []string{
		"TRIPGRID_FEATURE_CONFIGURED_COLUMN_WIDTHS=yes",
		"TRIPGRID_FEATURE_BADGE_COLORS=off",
		"TRIPGRID_FEATURE_IGNORED=maybe",
		"SOME_OTHER=value",
	}
	tokens := FromEnv(env)
	if want := []string{"-badge-colors", "configured-column-widths"}; !reflect.DeepEqual(tokens, want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	flags, err := Resolve(tokens)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if want := []Name{FeatureConfiguredColumnWidths}; !reflect.DeepEqual(flags.EnabledNames(), want) {
		t.Fatalf("enabled = %v", flags.EnabledNames())
	}
}

func TestFromEnvUsesProcessEnv(t *testing.T) {
	t.Setenv("TRIPGRID_FEATURE_CONFIGURED_COLUMN_WIDTHS", "true")
	flags, err := Resolve(FromEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !flags.Enabled(FeatureConfiguredColumnWidths) {
		t.Fatalf("expected process env to enable flag")
	}
}

func TestContextHelpers(t *testing.T) {
	flags, err := Resolve([]string{"configured-column-widths"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := ContextWithFlags(context.Background(), flags)
	if !FromContext(ctx).Enabled(FeatureConfiguredColumnWidths) {
		t.Fatalf("expected flag to survive context round-trip")
	}
	if FromContext(context.Background()).Enabled(FeatureConfiguredColumnWidths) {
		t.Fatalf("bare context should only carry defaults")
	}
	if !FromContext(context.Background()).Enabled(FeatureBadgeColors) {
		t.Fatalf("bare context should carry default-on flags")
	}
}

func TestEnvVar(t *testing.T) {
	def, ok := DefinitionByName(FeatureBadgeColors)
	if !ok {
		t.Fatalf("missing definition")
	}
	if got := def.EnvVar(); got != "TRIPGRID_FEATURE_BADGE_COLORS" {
		t.Fatalf("EnvVar = %s", got)
	}
	if len(Definitions()) != 2 {
		t.Fatalf("unexpected registry size")
	}
}
