package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-kurosawa/ahasync/pkg/cli/config"
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
)

func TestPolicy_Load_Defaults(t *testing.T) {
	policy := &config.Policy{}

	got, err := policy.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	want := model.DefaultFieldPolicy()
	if len(got.Release.Tracked) != len(want.Release.Tracked) {
		t.Errorf("Load() release tracked fields = %v, want %v", got.Release.Tracked, want.Release.Tracked)
	}
	if got.Feature.EmptyBehavior(model.FieldProductManager) != model.EmptyClear {
		t.Error("Load() lost the default feature empty-value behavior")
	}
}

func TestPolicy_Load_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	content := `
[release]
tracked = ["Name"]

[feature]
tracked = ["Name", "Health"]

[feature.empty]
"Health" = "clear"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	policy := &config.Policy{Path: path}
	got, err := policy.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if len(got.Release.Tracked) != 1 || got.Release.Tracked[0] != model.FieldName {
		t.Errorf("Load() release tracked = %v, want [Name]", got.Release.Tracked)
	}
	if len(got.Feature.Tracked) != 2 {
		t.Errorf("Load() feature tracked = %v, want 2 fields", got.Feature.Tracked)
	}
	if got.Feature.EmptyBehavior(model.FieldHealth) != model.EmptyClear {
		t.Error("Load() did not apply the empty-value override")
	}
}

func TestPolicy_Load_MissingFile(t *testing.T) {
	policy := &config.Policy{Path: filepath.Join(t.TempDir(), "does-not-exist.toml")}

	if _, err := policy.Load(); err == nil {
		t.Error("Load() should return error for a missing policy file")
	}
}
