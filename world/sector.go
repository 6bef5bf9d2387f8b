package world

import (
	"cmp"
	"math"
	"slices"

	"github.com/dendrascience/valheim-save-tools/zpack"
)

// Sector is a 64 by 64 unit map chunk.
type Sector = zpack.Vector2i

// SectorSize is the edge length of a sector in world units.
const SectorSize = 64

// SectorOf returns the sector containing a world position. Sectors are
// centred on multiples of SectorSize.
func SectorOf(pos zpack.Vector3) Sector {
	return Sector{
		X: int32(math.Floor(float64(pos.X+SectorSize/2) / SectorSize)),
		Y: int32(math.Floor(float64(pos.Z+SectorSize/2) / SectorSize)),
	}
}

// neighbours returns the eight sectors around s.
func neighbours(s Sector) [8]Sector {
	var out [8]Sector
	i := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = Sector{X: s.X + dx, Y: s.Y + dy}
			i++
		}
	}
	return out
}

func compareSectors(a, b Sector) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// sortedSectors returns the keys of m in a stable order.
func sortedSectors[V any](m map[Sector]V) []Sector {
	out := make([]Sector, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	slices.SortFunc(out, compareSectors)
	return out
}
