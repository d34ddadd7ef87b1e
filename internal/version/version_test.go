package version

import "testing"

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.0", GitCommit: "abc123", BuildDate: "2024-05-01"}
	if got := info.String(); got != "tripgrid 1.2.0 (abc123, built 2024-05-01)" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Info{Version: "dev"}).String(); got != "tripgrid dev" {
		t.Fatalf("String() = %q", got)
	}
}

func TestGetDropsUnknownStamps(t *testing.T) {
	info := Get()
	if info.GitCommit == "unknown" || info.BuildDate == "unknown" {
		t.Fatalf("unknown stamps should be blank: %+v", info)
	}
	if info.GoVersion == "" || info.Platform == "" {
		t.Fatalf("runtime details missing: %+v", info)
	}
}
