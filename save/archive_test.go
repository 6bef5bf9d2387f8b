package save

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/dendrascience/valheim-save-tools/zpack"
	"github.com/pixil98/go-testutil"
)

func sampleMetadata(version int) *Metadata {
	return &Metadata{
		Version:            version,
		Name:               "Midgard",
		SeedName:           "HHcLC5acQt",
		Seed:               stablehash.Hash("HHcLC5acQt"),
		UID:                1700000000,
		WorldGenVersion:    2,
		NeedsDB:            true,
		StartingGlobalKeys: []string{"nomap"},
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	for _, version := range []int{20, 25, 26, 30, 32, MaxWorldVersion} {
		got := roundTrip(t, sampleMetadata(version), DefaultHints()).(*Metadata)
		testutil.AssertEqual(t, "name", got.Name, "Midgard")
		testutil.AssertEqual(t, "needs db", got.NeedsDB, version >= 30)
		testutil.AssertEqual(t, "starting keys", len(got.StartingGlobalKeys) == 1, version >= 32)
	}
}

func TestMetadataSkipsUnknownTrailingFields(t *testing.T) {
	m := sampleMetadata(MaxWorldVersion)
	p := zpack.New()
	p.WriteFramed(func(p *zpack.Package) error {
		p.WriteInt32(int32(m.Version))
		metadataLayout.write(p, m.Version, m)
		p.WriteInt32(12345)
		p.WriteString("added by a newer game")
		return nil
	})
	p.WriteInt32(-1)

	r := zpack.NewReader(p.Bytes())
	got, err := readMetadata(r, DefaultHints())
	if err != nil {
		t.Fatalf("readMetadata() error = %v", err)
	}
	testutil.AssertEqual(t, "name", got.Name, "Midgard")
	testutil.AssertEqual(t, "cursor after frame", r.ReadInt32(), int32(-1))
}

func TestMetadataEdits(t *testing.T) {
	m := sampleMetadata(MaxWorldVersion)
	m.SetName("Asgard")
	testutil.AssertEqual(t, "name", m.Name, "Asgard")

	seen := map[int64]bool{}
	for range 20 {
		m.RegenerateUID()
		if m.UID < 0 {
			t.Fatalf("RegenerateUID() = %d, want non-negative", m.UID)
		}
		seen[m.UID] = true
	}
	testutil.AssertEqual(t, "distinct uids", len(seen), 20)
}

func TestTypeFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Type
		wantErr bool
	}{
		{"worlds/Midgard.fwl", TypeMetadata, false},
		{"worlds/Midgard.DB", TypeWorld, false},
		{"characters/ragnar.fch", TypeCharacter, false},
		{"dump.json", TypeJSON, false},
		{"Midgard.db.old", TypeUnknown, true},
		{"noext", TypeUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := TypeFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TypeFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownType) {
				t.Errorf("TypeFromPath(%q) error = %v, want ErrUnknownType", tt.path, err)
			}
			testutil.AssertEqual(t, "type", got, tt.want)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		archive Archive
		file    string
	}{
		{"metadata", sampleMetadata(MaxWorldVersion), "Midgard.fwl"},
		{"world", sampleWorld(MaxWorldVersion), "Midgard.db"},
		{"legacy world", sampleLegacyWorld(), "Old.db"},
		{"character", sampleCharacter(MaxCharacterVersion, sampleMinimap(7), samplePlayerData(26)), "ragnar.fch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			want, err := Encode(tt.archive)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			bin := filepath.Join(dir, tt.file)
			if err := WriteFile(tt.archive, bin); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			a, err := ReadFile(bin, DefaultHints())
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			testutil.AssertEqual(t, "type", a.Type(), tt.archive.Type())

			// Through a JSON dump and back to binary.
			js := filepath.Join(dir, "dump.json")
			if err := WriteFile(a, js); err != nil {
				t.Fatalf("WriteFile(json) error = %v", err)
			}
			a, err = ReadFile(js, DefaultHints())
			if err != nil {
				t.Fatalf("ReadFile(json) error = %v", err)
			}
			out := filepath.Join(dir, "out"+filepath.Ext(tt.file))
			if err := WriteFile(a, out); err != nil {
				t.Fatalf("WriteFile() after json error = %v", err)
			}
			got, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			testutil.AssertEqual(t, "bytes equal", bytes.Equal(got, want), true)

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}
			testutil.AssertEqual(t, "no temp files left", len(entries), 3)
		})
	}
}

func TestWriteFileWrongExtension(t *testing.T) {
	err := WriteFile(sampleMetadata(MaxWorldVersion), filepath.Join(t.TempDir(), "Midgard.db"))
	testutil.AssertErrorContains(t, err, "cannot write fwl archive to a .db file")
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.db"), DefaultHints())
	if err == nil {
		t.Error("ReadFile() on a missing file succeeded")
	}

	_, err = ReadFile(filepath.Join(dir, "x.db"), ReaderHints{ResolveNames: true})
	testutil.AssertErrorContains(t, err, ErrMissingRegistry.Error())

	bad := filepath.Join(dir, "bad.fwl")
	if err := os.WriteFile(bad, []byte{200, 0, 0, 0, 1}, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	_, err = ReadFile(bad, DefaultHints())
	var pe *zpack.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("ReadFile() error = %v, want *zpack.ParseError", err)
	}
	testutil.AssertErrorContains(t, err, "bad.fwl")

	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte(`{"type":"txt","archive":{}}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	_, err = ReadFile(badJSON, DefaultHints())
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("ReadFile() error = %v, want ErrUnknownType", err)
	}
}

func TestAsWorld(t *testing.T) {
	w, err := AsWorld(sampleWorld(MaxWorldVersion))
	if err != nil || w == nil {
		t.Fatalf("AsWorld(world) = %v, %v", w, err)
	}
	_, err = AsWorld(sampleMetadata(MaxWorldVersion))
	if !errors.Is(err, ErrNotWorld) {
		t.Errorf("AsWorld(metadata) error = %v, want ErrNotWorld", err)
	}
}

func TestJSONKeys(t *testing.T) {
	w := &World{Version: MaxWorldVersion, Zdos: []*Zdo{{
		Ints: Props[int32]{
			{Key: NameKey("creator"), Value: 1},
			{Key: HashKey(-77), Value: 2},
		},
	}}}
	data, err := WriteJSON(w)
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`"key": "creator"`)) {
		t.Errorf("WriteJSON() missing named key:\n%s", data)
	}
	if !bytes.Contains(data, []byte(`"key": "#-77"`)) {
		t.Errorf("WriteJSON() missing hash key:\n%s", data)
	}
	if !bytes.Contains(data, []byte(`"type": "db"`)) {
		t.Errorf("WriteJSON() missing type tag:\n%s", data)
	}

	a, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	ints := a.(*World).Zdos[0].Ints
	testutil.AssertEqual(t, "named key hash", ints[0].Key.Hash(), stablehash.Hash("creator"))
	testutil.AssertEqual(t, "hash key", ints[1].Key.Hash(), int32(-77))
}

func TestMetadataUnsupportedVersion(t *testing.T) {
	data, err := Encode(sampleMetadata(MaxWorldVersion + 1))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	_, err = Decode(data, TypeMetadata, ReaderHints{FailOnUnsupportedVersion: true})
	var uv *UnsupportedVersionError
	if !errors.As(err, &uv) {
		t.Fatalf("Decode() error = %v, want *UnsupportedVersionError", err)
	}
	testutil.AssertEqual(t, "record", uv.Record, "metadata")
	testutil.AssertEqual(t, "version", uv.Version, MaxWorldVersion+1)
	testutil.AssertEqual(t, "supported", uv.Supported, MaxWorldVersion)

	m, err := Decode(data, TypeMetadata, ReaderHints{})
	if err != nil {
		t.Fatalf("Decode() without failing error = %v", err)
	}
	testutil.AssertEqual(t, "name", m.(*Metadata).Name, "Midgard")
}
