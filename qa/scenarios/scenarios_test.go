package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/transitflow/depotplan/core/model"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("*.yaml")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestParseEnums(t *testing.T) {
	if parseStatus("EMERGENCY_REPAIR") != model.StatusEmergencyRepair {
		t.Error("status parse")
	}
	if parseStatus("anything") != model.StatusActive {
		t.Error("status default")
	}
	if parseTrack("STORAGE") != model.TrackStorage {
		t.Error("track parse")
	}
	if parseTrack("") != model.TrackService {
		t.Error("track default")
	}
	if parsePriority("CRITICAL") != model.PriorityCritical {
		t.Error("priority parse")
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
