package save

import (
	"github.com/dendrascience/valheim-save-tools/zpack"
)

// LegacyZdo carries the zdo fields of the framed layout used before
// FlagFormatVersion.
type LegacyZdo struct {
	ID            ZdoID            `json:"id"`
	OwnerRevision uint32           `json:"ownerRevision"`
	DataRevision  uint32           `json:"dataRevision"`
	Owner         int64            `json:"owner"`
	TimeCreated   int64            `json:"timeCreated"`
	PgwVersion    int32            `json:"pgwVersion"`
	Reserved      int32            `json:"reserved,omitempty"` // worlds 16 to 23 only
	Rotation      zpack.Quaternion `json:"rotation"`
}

// DeadZdo records a destroyed object in legacy worlds.
type DeadZdo struct {
	ID        ZdoID `json:"id"`
	Timestamp int64 `json:"timestamp"`
}

func readLegacyZdo(p *zpack.Package, version int, hints ReaderHints) *Zdo {
	z := &Zdo{Legacy: &LegacyZdo{ID: readZdoID(p)}}
	p.ReadFramed(func(p *zpack.Package) error {
		l := z.Legacy
		l.OwnerRevision = p.ReadUint32()
		l.DataRevision = p.ReadUint32()
		z.Persistent = p.ReadBool()
		l.Owner = p.ReadInt64()
		l.TimeCreated = p.ReadInt64()
		l.PgwVersion = p.ReadInt32()
		if version >= 16 && version < 24 {
			l.Reserved = p.ReadInt32()
		}
		if version >= 23 {
			z.Type = p.ReadUint8()
		}
		if version >= 22 {
			z.Distant = p.ReadBool()
		}
		if version >= 17 {
			z.Prefab = p.ReadInt32()
			z.PrefabName, _ = hints.lookup(z.Prefab)
		}
		z.Sector = p.ReadVector2i()
		z.Position = p.ReadVector3()
		l.Rotation = p.ReadQuaternion()

		z.Floats = readProps(p, p.ReadCount(version), hints, p.ReadFloat32)
		z.Vec3s = readProps(p, p.ReadCount(version), hints, p.ReadVector3)
		z.Quats = readProps(p, p.ReadCount(version), hints, p.ReadQuaternion)
		z.Ints = readProps(p, p.ReadCount(version), hints, p.ReadInt32)
		z.Longs = readProps(p, p.ReadCount(version), hints, p.ReadInt64)
		z.Strings = readProps(p, p.ReadCount(version), hints, p.ReadString)
		return nil
	})
	return z
}

func writeLegacyZdo(p *zpack.Package, version int, z *Zdo) {
	l := z.Legacy
	if l == nil {
		l = &LegacyZdo{}
	}
	writeZdoID(p, l.ID)
	p.WriteFramed(func(p *zpack.Package) error {
		p.WriteUint32(l.OwnerRevision)
		p.WriteUint32(l.DataRevision)
		p.WriteBool(z.Persistent)
		p.WriteInt64(l.Owner)
		p.WriteInt64(l.TimeCreated)
		p.WriteInt32(l.PgwVersion)
		if version >= 16 && version < 24 {
			p.WriteInt32(l.Reserved)
		}
		if version >= 23 {
			p.WriteUint8(z.Type)
		}
		if version >= 22 {
			p.WriteBool(z.Distant)
		}
		if version >= 17 {
			p.WriteInt32(z.Prefab)
		}
		p.WriteVector2i(z.Sector)
		p.WriteVector3(z.Position)
		p.WriteQuaternion(l.Rotation)

		writeProps(p, version, z.Floats, p.WriteFloat32)
		writeProps(p, version, z.Vec3s, p.WriteVector3)
		writeProps(p, version, z.Quats, p.WriteQuaternion)
		writeProps(p, version, z.Ints, p.WriteInt32)
		writeProps(p, version, z.Longs, p.WriteInt64)
		writeProps(p, version, z.Strings, p.WriteString)
		return nil
	})
}

func readDeadZdos(p *zpack.Package) []DeadZdo {
	n := p.ReadCount32()
	dead := make([]DeadZdo, 0, min(n, p.Remaining()))
	for range n {
		id := readZdoID(p)
		dead = append(dead, DeadZdo{ID: id, Timestamp: p.ReadInt64()})
	}
	return dead
}

func writeDeadZdos(p *zpack.Package, dead []DeadZdo) {
	p.WriteInt32(int32(len(dead)))
	for _, d := range dead {
		writeZdoID(p, d.ID)
		p.WriteInt64(d.Timestamp)
	}
}
