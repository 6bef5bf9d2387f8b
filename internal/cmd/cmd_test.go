package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/pixil98/go-testutil"
)

func seedInto(t *testing.T, dir string) {
	t.Helper()
	opts := seedOptions{
		output:     dir,
		seedName:   "HHcLC5acQt",
		worldName:  "Seeded",
		playerName: "Tester",
		bases:      2,
		objects:    50,
	}
	var out bytes.Buffer
	if err := runSeed(opts, &out); err != nil {
		t.Fatalf("runSeed() error = %v", err)
	}
}

func TestHash(t *testing.T) {
	var out bytes.Buffer
	if err := runHash([]string{"ownerName"}, false, &out); err != nil {
		t.Fatalf("runHash() error = %v", err)
	}
	testutil.AssertEqual(t, "output", out.String(), "1227488406\townerName\n")
}

func TestHashLookup(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "known name",
			args: []string{"1227488406"},
			want: "1227488406\townerName\n",
		},
		{
			name: "hash key form",
			args: []string{"#1227488406"},
			want: "1227488406\townerName\n",
		},
		{
			name: "unknown hash",
			args: []string{"12"},
			want: "12\t(unknown)\n",
		},
		{
			name:    "not a number",
			args:    []string{"woodwall"},
			wantErr: "invalid hash",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runHash(tt.args, true, &out)
			if tt.wantErr != "" {
				testutil.AssertErrorContains(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("runHash() error = %v", err)
			}
			testutil.AssertEqual(t, "output", out.String(), tt.want)
		})
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	seedInto(t, a)
	seedInto(t, b)
	for _, name := range []string{"Seeded.fwl", "Seeded.db", "Tester.fch"} {
		x, err := os.ReadFile(filepath.Join(a, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		y, err := os.ReadFile(filepath.Join(b, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		testutil.AssertEqual(t, name+" identical", bytes.Equal(x, y), true)
	}
}

func TestSeedThenValidate(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)
	// JSON dumps are skipped by the directory walk.
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	sum, err := runValidate(context.Background(), dir, 2, &out)
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	testutil.AssertEqual(t, "checked", sum.checked, 3)
	testutil.AssertEqual(t, "failed", sum.failed, 0)
}

func TestValidateReportsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)
	path := filepath.Join(dir, "Seeded.db")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	sum, err := runValidate(context.Background(), dir, 1, &out)
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	testutil.AssertEqual(t, "failed", sum.failed, 1)
	testutil.AssertEqual(t, "reported", strings.Contains(out.String(), "FAIL "+path), true)
}

func TestValidateSingleFile(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)

	var out bytes.Buffer
	sum, err := runValidate(context.Background(), filepath.Join(dir, "Tester.fch"), 1, &out)
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	testutil.AssertEqual(t, "checked", sum.checked, 1)

	_, err = runValidate(context.Background(), filepath.Join(dir, "missing.db"), 1, &out)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestConvertWorldProcessors(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)
	jsonPath := filepath.Join(dir, "dump.json")

	var out bytes.Buffer
	err := runConvert(convertOptions{
		input:          filepath.Join(dir, "Seeded.db"),
		output:         jsonPath,
		addGlobalKeys:  []string{"defeated_eikthyr", "nomap"},
		listGlobalKeys: true,
		resetWorld:     true,
		cleanThreshold: -1,
	}, &out)
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	testutil.AssertEqual(t, "added", strings.Contains(out.String(), "Added 2 global keys"), true)
	testutil.AssertEqual(t, "listed", strings.Contains(out.String(), "  nomap\n"), true)

	a, err := save.ReadFile(jsonPath, save.DefaultHints())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	w, err := save.AsWorld(a)
	if err != nil {
		t.Fatalf("AsWorld() error = %v", err)
	}
	testutil.AssertEqual(t, "global keys", len(w.Zones.GlobalKeys), 2)
	orig, err := save.ReadFile(filepath.Join(dir, "Seeded.db"), save.DefaultHints())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	testutil.AssertEqual(t, "reset removed scenery", len(w.Zdos) < len(orig.(*save.World).Zdos), true)
	for _, z := range w.Zdos {
		if z.Prefab == stablehash.Hash("BossStone_Eikthyr") {
			return
		}
	}
	t.Error("boss stone removed by reset")
}

func TestConvertJSONBackToBinary(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)
	jsonPath := filepath.Join(dir, "dump.json")

	var out bytes.Buffer
	if err := runConvert(convertOptions{input: filepath.Join(dir, "Seeded.db"), output: jsonPath, cleanThreshold: -1}, &out); err != nil {
		t.Fatalf("runConvert() to json error = %v", err)
	}
	back := filepath.Join(dir, "back.db")
	if err := runConvert(convertOptions{input: jsonPath, output: back, cleanThreshold: -1}, &out); err != nil {
		t.Fatalf("runConvert() back to binary error = %v", err)
	}
	want, err := os.ReadFile(filepath.Join(dir, "Seeded.db"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(back)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "binary identical after json", bytes.Equal(got, want), true)
}

func TestConvertCleanStructures(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)
	rules := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(rules, []byte("threshold: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := runConvert(convertOptions{
		input:           filepath.Join(dir, "Seeded.db"),
		cleanStructures: true,
		cleanThreshold:  -1,
		rulesPath:       rules,
	}, &out)
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	testutil.AssertEqual(t, "cleaned", strings.Contains(out.String(), "Cleaned structures"), true)
	testutil.AssertEqual(t, "nothing written", strings.Contains(out.String(), "Wrote"), false)
}

func TestConvertWorldProcessorOnCharacter(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)

	var out bytes.Buffer
	err := runConvert(convertOptions{
		input:          filepath.Join(dir, "Tester.fch"),
		listGlobalKeys: true,
		cleanThreshold: -1,
	}, &out)
	testutil.AssertErrorContains(t, err, "not a world")
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	seedInto(t, dir)

	var out bytes.Buffer
	if err := runStats(filepath.Join(dir, "Seeded.db"), "", 3, &out); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	testutil.AssertEqual(t, "ships", strings.Contains(out.String(), "Ships: 2\n"), true)
	testutil.AssertEqual(t, "boss stones", strings.Contains(out.String(), "Boss stones: 1\n"), true)
	testutil.AssertEqual(t, "top prefabs", strings.Contains(out.String(), "Top prefabs:"), true)
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"convert", "validate", "stats", "hash", "seed", "version"} {
		c, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%q) error = %v", name, err)
		}
		testutil.AssertEqual(t, "command name", c.Name(), name)
		testutil.AssertEqual(t, name+" grouped", c.GroupID != "", true)
	}
}
