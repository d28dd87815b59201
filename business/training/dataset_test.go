package training

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSyntheticHistory_Shape(t *testing.T) {
	ds := SyntheticHistory(500, 42)

	if ds.Len() != 500 {
		t.Fatalf("Len = %d, want 500", ds.Len())
	}
	if len(ds.EPFeatures) != 500 || len(ds.WPFeatures) != 500 || len(ds.WinLabel) != 500 {
		t.Fatal("feature and label slices out of sync")
	}
	for i, row := range ds.EPFeatures {
		if len(row) != 9 {
			t.Fatalf("EP row %d has %d features, want 9", i, len(row))
		}
	}
	for i, row := range ds.WPFeatures {
		if len(row) != 12 {
			t.Fatalf("WP row %d has %d features, want 12", i, len(row))
		}
	}
	for i, label := range ds.WinLabel {
		if label != 0 && label != 1 {
			t.Fatalf("label %d = %v, want 0 or 1", i, label)
		}
	}
}

func TestSyntheticHistory_DeterministicPerSeed(t *testing.T) {
	a := SyntheticHistory(200, 7)
	b := SyntheticHistory(200, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different datasets")
	}

	c := SyntheticHistory(200, 8)
	if reflect.DeepEqual(a.EPTarget, c.EPTarget) {
		t.Error("different seeds produced identical targets")
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV_MapsSourceColumnsAndDefaults(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"down,ydstogo,yardline_100,half_seconds_remaining,score_differential",
		"4,1,45,420,-3",
		"3,8,70,1200,7",
	}, "\n"))

	ds, err := LoadCSV(path, 42)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}

	// Schema order with defaults for the absent optional columns:
	// qtr=0, offense/defense timeouts=3, home=1.
	want := []float64{4, 1, 45, 0, 420, -3, 3, 3, 1}
	if !reflect.DeepEqual(ds.EPFeatures[0], want) {
		t.Errorf("EP row = %v, want %v", ds.EPFeatures[0], want)
	}
	if got := ds.WPFeatures[0][9:]; !reflect.DeepEqual(got, []float64{1, 0, 0}) {
		t.Errorf("WP tail = %v, want possession 1 and zero strengths", got)
	}
}

func TestLoadCSV_MissingCoreColumnFailsLoudly(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"down,yardline_100",
		"4,45",
	}, "\n"))

	_, err := LoadCSV(path, 42)
	if err == nil {
		t.Fatal("expected error for missing core column")
	}
	if !strings.Contains(err.Error(), "ydstogo") {
		t.Errorf("error %q does not name the missing column", err)
	}
}

func TestLoadCSV_UsesProvidedTargets(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"down,ydstogo,yardline_100,ep_next_score,win",
		"4,1,45,2.5,1",
		"3,8,70,-0.75,0",
	}, "\n"))

	ds, err := LoadCSV(path, 42)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ds.EPTarget[0] != 2.5 || ds.EPTarget[1] != -0.75 {
		t.Errorf("EP targets = %v, want provided values", ds.EPTarget)
	}
	if ds.WinLabel[0] != 1 || ds.WinLabel[1] != 0 {
		t.Errorf("win labels = %v, want provided values", ds.WinLabel)
	}
}

func TestLoadCSV_DerivedLabelsDeterministicPerSeed(t *testing.T) {
	content := strings.Join([]string{
		"down,ydstogo,yardline_100",
		"4,1,45",
		"2,10,60",
		"3,4,30",
	}, "\n")
	path := writeCSV(t, content)

	a, err := LoadCSV(path, 5)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	b, err := LoadCSV(path, 5)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(a.WinLabel, b.WinLabel) {
		t.Error("same seed produced different derived labels")
	}
}

func TestLoadCSV_MalformedValueNamesRow(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"down,ydstogo,yardline_100",
		"4,1,45",
		"4,oops,45",
	}, "\n"))

	_, err := LoadCSV(path, 42)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error %q does not locate the bad row", err)
	}
}
