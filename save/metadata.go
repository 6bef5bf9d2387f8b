package save

import (
	"encoding/binary"
	"math"

	"github.com/dendrascience/valheim-save-tools/zpack"
	"github.com/google/uuid"
)

// Metadata is the contents of a .fwl world metadata file.
type Metadata struct {
	Version            int      `json:"version"`
	Name               string   `json:"name"`
	SeedName           string   `json:"seedName"`
	Seed               int32    `json:"seed"`
	UID                int64    `json:"uid"`
	WorldGenVersion    int32    `json:"worldGenVersion"`
	NeedsDB            bool     `json:"needsDb"`
	StartingGlobalKeys []string `json:"startingGlobalKeys,omitempty"`
}

var metadataLayout = layout[Metadata]{
	{
		read:  func(p *zpack.Package, m *Metadata) { m.Name = p.ReadString() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteString(m.Name) },
	},
	{
		read:  func(p *zpack.Package, m *Metadata) { m.SeedName = p.ReadString() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteString(m.SeedName) },
	},
	{
		read:  func(p *zpack.Package, m *Metadata) { m.Seed = p.ReadInt32() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteInt32(m.Seed) },
	},
	{
		read:  func(p *zpack.Package, m *Metadata) { m.UID = p.ReadInt64() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteInt64(m.UID) },
	},
	{
		since: 26,
		read:  func(p *zpack.Package, m *Metadata) { m.WorldGenVersion = p.ReadInt32() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteInt32(m.WorldGenVersion) },
	},
	{
		since: 30,
		read:  func(p *zpack.Package, m *Metadata) { m.NeedsDB = p.ReadBool() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteBool(m.NeedsDB) },
	},
	{
		since: 32,
		read:  func(p *zpack.Package, m *Metadata) { m.StartingGlobalKeys = p.ReadStringSet() },
		write: func(p *zpack.Package, m *Metadata) { p.WriteStringSet(m.StartingGlobalKeys) },
	},
}

func (m *Metadata) Type() Type { return TypeMetadata }

// SetName renames the world.
func (m *Metadata) SetName(name string) { m.Name = name }

// RegenerateUID gives the world a new random non-negative unique id.
func (m *Metadata) RegenerateUID() {
	u := uuid.New()
	m.UID = int64(binary.LittleEndian.Uint64(u[:8]) & math.MaxInt64)
}

func readMetadata(p *zpack.Package, hints ReaderHints) (*Metadata, error) {
	m := &Metadata{}
	err := p.ReadFramed(func(p *zpack.Package) error {
		m.Version = int(p.ReadInt32())
		if err := hints.checkVersion("metadata", m.Version, MaxWorldVersion); err != nil {
			return err
		}
		metadataLayout.read(p, m.Version, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metadata) encode(p *zpack.Package) error {
	return p.WriteFramed(func(p *zpack.Package) error {
		p.WriteInt32(int32(m.Version))
		metadataLayout.write(p, m.Version, m)
		return nil
	})
}
