package save

import (
	"slices"

	"github.com/dendrascience/valheim-save-tools/zpack"
	"go.uber.org/zap"
)

// AllGlobalKeys is the argument to RemoveGlobalKey that clears every key.
const AllGlobalKeys = "all"

// Zones is the world generation bookkeeping of a world database.
type Zones struct {
	GeneratedZones     []zpack.Vector2i `json:"generatedZones"`
	PgwVersion         int32            `json:"pgwVersion"`
	LocationVersion    int32            `json:"locationVersion"`
	GlobalKeys         []string         `json:"globalKeys"`
	LocationsGenerated bool             `json:"locationsGenerated"`
	PrefabLocations    []PrefabLocation `json:"prefabLocations"`
}

// PrefabLocation is a placed world location such as a dungeon or an altar.
type PrefabLocation struct {
	Name      string        `json:"name"`
	Position  zpack.Vector3 `json:"position"`
	Generated bool          `json:"generated"`
}

// ListGlobalKeys returns a copy of the world's global keys in stored order.
func (z *Zones) ListGlobalKeys() []string {
	return slices.Clone(z.GlobalKeys)
}

// AddGlobalKey adds key unless it is already present. It reports whether the
// key was added.
func (z *Zones) AddGlobalKey(key string) bool {
	if slices.Contains(z.GlobalKeys, key) {
		return false
	}
	z.GlobalKeys = append(z.GlobalKeys, key)
	return true
}

// RemoveGlobalKey removes key, or every key when key is AllGlobalKeys. It
// reports whether anything was removed.
func (z *Zones) RemoveGlobalKey(key string) bool {
	if key == AllGlobalKeys {
		had := len(z.GlobalKeys) > 0
		z.GlobalKeys = nil
		return had
	}
	n := len(z.GlobalKeys)
	z.GlobalKeys = slices.DeleteFunc(z.GlobalKeys, func(k string) bool { return k == key })
	return len(z.GlobalKeys) != n
}

func readZones(p *zpack.Package, version int) Zones {
	var z Zones
	n := p.ReadCount32()
	z.GeneratedZones = make([]zpack.Vector2i, 0, min(n, p.Remaining()))
	for range n {
		z.GeneratedZones = append(z.GeneratedZones, p.ReadVector2i())
	}
	z.PgwVersion = p.ReadInt32()
	if version >= 21 {
		z.LocationVersion = p.ReadInt32()
	}
	if version >= 14 {
		z.GlobalKeys = p.ReadStringSet()
	}
	z.LocationsGenerated = p.ReadBool()
	n = p.ReadCount32()
	z.PrefabLocations = make([]PrefabLocation, 0, min(n, p.Remaining()))
	for range n {
		z.PrefabLocations = append(z.PrefabLocations, PrefabLocation{
			Name:      p.ReadString(),
			Position:  p.ReadVector3(),
			Generated: p.ReadBool(),
		})
	}
	Logger().Info("loaded locations", zap.Int("count", len(z.PrefabLocations)))
	return z
}

func writeZones(p *zpack.Package, version int, z *Zones) {
	p.WriteInt32(int32(len(z.GeneratedZones)))
	for _, v := range z.GeneratedZones {
		p.WriteVector2i(v)
	}
	p.WriteInt32(z.PgwVersion)
	if version >= 21 {
		p.WriteInt32(z.LocationVersion)
	}
	if version >= 14 {
		p.WriteStringSet(z.GlobalKeys)
	}
	p.WriteBool(z.LocationsGenerated)
	p.WriteInt32(int32(len(z.PrefabLocations)))
	for _, l := range z.PrefabLocations {
		p.WriteString(l.Name)
		p.WriteVector3(l.Position)
		p.WriteBool(l.Generated)
	}
}
