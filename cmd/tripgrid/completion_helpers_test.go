package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/grid"
)

func TestCompleteColumnKeysFromDataset(t *testing.T) {
	dir := isolateEnv(t)
	opts := config.NewOptions()
	opts.RowsPath = writeDataset(t, dir)
	got := completeColumnKeys(opts, "s")
	if want := []string{"status", "seats"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("completeColumnKeys = %v, want %v", got, want)
	}
}

func TestCompleteFilterOperators(t *testing.T) {
	cases := []struct {
		partial string
		want    []string
	}{
		{"g", []string{"seats:gt:", "seats:gte:"}},
		{"ends", []string{"seats:endsWith:"}},
		{"zz", nil},
	}
	for _, tc := range cases {
		got := completeFilterOperators("seats", tc.partial)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("completeFilterOperators(%q) = %v, want %v", tc.partial, got, tc.want)
		}
	}
	if got := completeFilterOperators("seats", ""); len(got) != len(grid.Operators()) {
		t.Fatalf("expected every operator for an empty partial, got %v", got)
	}
}

func TestUnconfiguredColumns(t *testing.T) {
	cols := []grid.ColumnConfig{{Key: "trip"}, {Key: "status"}}
	sortCfg := &grid.SortConfig{Column: "eta"}
	filters := []grid.FilterConfig{
		{Column: "status", Operator: grid.OpEquals},
		{Column: "price", Operator: grid.OpGT},
		{Column: "eta", Operator: grid.OpContains},
	}
	got := unconfiguredColumns(cols, sortCfg, filters)
	if want := []string{"eta", "price"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unconfiguredColumns = %v, want %v", got, want)
	}
	if got := unconfiguredColumns(cols, nil, nil); got != nil {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestShellCompletionSuggestsColumnsAndOperators(t *testing.T) {
	dir := isolateEnv(t)
	rows := writeDataset(t, dir)

	out, _, err := runCLI(t, "__complete", "view", "--rows", rows, "--sort", "s")
	if err != nil {
		t.Fatalf("complete --sort: %v", err)
	}
	if !strings.Contains(out, "status\n") || !strings.Contains(out, "seats\n") || strings.Contains(out, "trip\n") {
		t.Fatalf("unexpected --sort completions:\n%s", out)
	}

	out, _, err = runCLI(t, "__complete", "view", "--rows", rows, "--filter", "seats:g")
	if err != nil {
		t.Fatalf("complete --filter: %v", err)
	}
	if !strings.Contains(out, "seats:gt:\n") || !strings.Contains(out, "seats:gte:\n") {
		t.Fatalf("unexpected --filter completions:\n%s", out)
	}

	help, _, err := runCLI(t, "completion", "--help")
	if err != nil {
		t.Fatalf("completion --help: %v", err)
	}
	if !strings.Contains(help, "column keys") {
		t.Fatalf("completion help does not describe column completion:\n%s", help)
	}
}
