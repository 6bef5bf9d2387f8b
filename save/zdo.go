package save

import (
	"github.com/dendrascience/valheim-save-tools/zpack"
)

// FlagFormatVersion is the first world version that stores zdos with a flags
// header instead of the framed legacy layout.
const FlagFormatVersion = 31

// Zdo flag bits.
const (
	flagConnection uint16 = 1 << iota
	flagFloats
	flagVec3s
	flagQuats
	flagInts
	flagLongs
	flagStrings
	flagByteArrays
	flagPersistent
	flagDistant
	flagTypeLow
	flagTypeHigh
	flagRotation

	flagDataMask = 0xff
	typeShift    = 10
)

// ZdoID is the network id of a zdo in the legacy layout.
type ZdoID struct {
	UserID int64  `json:"userId"`
	ID     uint32 `json:"id"`
}

func readZdoID(p *zpack.Package) ZdoID {
	return ZdoID{UserID: p.ReadInt64(), ID: p.ReadUint32()}
}

func writeZdoID(p *zpack.Package, id ZdoID) {
	p.WriteInt64(id.UserID)
	p.WriteUint32(id.ID)
}

// Connection links a zdo to another object.
type Connection struct {
	Type int8  `json:"type"`
	Hash int32 `json:"hash"`
}

// Zdo is a single world object.
type Zdo struct {
	Sector     zpack.Vector2i `json:"sector"`
	Position   zpack.Vector3  `json:"position"`
	Rotation   *zpack.Vector3 `json:"rotation,omitempty"`
	Prefab     int32          `json:"prefab"`
	PrefabName string         `json:"prefabName,omitempty"`
	Persistent bool           `json:"persistent"`
	Distant    bool           `json:"distant"`
	Type       uint8          `json:"type"`
	Connection *Connection    `json:"connection,omitempty"`

	Floats     Props[float32]          `json:"floats,omitempty"`
	Vec3s      Props[zpack.Vector3]    `json:"vec3s,omitempty"`
	Quats      Props[zpack.Quaternion] `json:"quats,omitempty"`
	Ints       Props[int32]            `json:"ints,omitempty"`
	Longs      Props[int64]            `json:"longs,omitempty"`
	Strings    Props[string]           `json:"strings,omitempty"`
	ByteArrays Props[[]byte]           `json:"byteArrays,omitempty"`

	// Legacy holds the fields that only exist in worlds older than
	// FlagFormatVersion.
	Legacy *LegacyZdo `json:"legacy,omitempty"`
}

// HasProperty reports whether any of the zdo's tables holds the hash h.
func (z *Zdo) HasProperty(h int32) bool {
	return z.Floats.Has(h) || z.Vec3s.Has(h) || z.Quats.Has(h) ||
		z.Ints.Has(h) || z.Longs.Has(h) || z.Strings.Has(h) || z.ByteArrays.Has(h)
}

// Flags computes the header word the zdo is written with. A data bit is set
// exactly when the matching table is non-empty.
func (z *Zdo) Flags() uint16 {
	var flags uint16
	if z.Connection != nil {
		flags |= flagConnection
	}
	tables := []struct {
		n    int
		flag uint16
	}{
		{len(z.Floats), flagFloats},
		{len(z.Vec3s), flagVec3s},
		{len(z.Quats), flagQuats},
		{len(z.Ints), flagInts},
		{len(z.Longs), flagLongs},
		{len(z.Strings), flagStrings},
		{len(z.ByteArrays), flagByteArrays},
	}
	for _, t := range tables {
		if t.n > 0 {
			flags |= t.flag
		}
	}
	if z.Persistent {
		flags |= flagPersistent
	}
	if z.Distant {
		flags |= flagDistant
	}
	flags |= uint16(z.Type&3) << typeShift
	if z.Rotation != nil {
		flags |= flagRotation
	}
	return flags
}

func readZdo(p *zpack.Package, version int, hints ReaderHints) *Zdo {
	flags := p.ReadUint16()
	z := &Zdo{
		Persistent: flags&flagPersistent != 0,
		Distant:    flags&flagDistant != 0,
		Type:       uint8(flags>>typeShift) & 3,
		Sector:     p.ReadVector2s(),
		Position:   p.ReadVector3(),
		Prefab:     p.ReadInt32(),
	}
	z.PrefabName, _ = hints.lookup(z.Prefab)
	if flags&flagRotation != 0 {
		rot := p.ReadVector3()
		z.Rotation = &rot
	}
	if flags&flagDataMask == 0 {
		return z
	}
	if flags&flagConnection != 0 {
		z.Connection = &Connection{Type: p.ReadInt8(), Hash: p.ReadInt32()}
	}
	if flags&flagFloats != 0 {
		z.Floats = readProps(p, p.ReadCount(version), hints, p.ReadFloat32)
	}
	if flags&flagVec3s != 0 {
		z.Vec3s = readProps(p, p.ReadCount(version), hints, p.ReadVector3)
	}
	if flags&flagQuats != 0 {
		z.Quats = readProps(p, p.ReadCount(version), hints, p.ReadQuaternion)
	}
	if flags&flagInts != 0 {
		z.Ints = readProps(p, p.ReadCount(version), hints, p.ReadInt32)
	}
	if flags&flagLongs != 0 {
		z.Longs = readProps(p, p.ReadCount(version), hints, p.ReadInt64)
	}
	if flags&flagStrings != 0 {
		z.Strings = readProps(p, p.ReadCount(version), hints, p.ReadString)
	}
	if flags&flagByteArrays != 0 {
		z.ByteArrays = readProps(p, p.ReadCount(version), hints, p.ReadByteArray)
	}
	return z
}

func writeZdo(p *zpack.Package, version int, z *Zdo) {
	flags := z.Flags()
	p.WriteUint16(flags)
	p.WriteVector2s(z.Sector)
	p.WriteVector3(z.Position)
	p.WriteInt32(z.Prefab)
	if z.Rotation != nil {
		p.WriteVector3(*z.Rotation)
	}
	if flags&flagDataMask == 0 {
		return
	}
	if z.Connection != nil {
		p.WriteInt8(z.Connection.Type)
		p.WriteInt32(z.Connection.Hash)
	}
	if len(z.Floats) > 0 {
		writeProps(p, version, z.Floats, p.WriteFloat32)
	}
	if len(z.Vec3s) > 0 {
		writeProps(p, version, z.Vec3s, p.WriteVector3)
	}
	if len(z.Quats) > 0 {
		writeProps(p, version, z.Quats, p.WriteQuaternion)
	}
	if len(z.Ints) > 0 {
		writeProps(p, version, z.Ints, p.WriteInt32)
	}
	if len(z.Longs) > 0 {
		writeProps(p, version, z.Longs, p.WriteInt64)
	}
	if len(z.Strings) > 0 {
		writeProps(p, version, z.Strings, p.WriteString)
	}
	if len(z.ByteArrays) > 0 {
		writeProps(p, version, z.ByteArrays, p.WriteByteArray)
	}
}
