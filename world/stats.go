package world

import (
	"cmp"
	"slices"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/stablehash"
)

// Stats describes the contents of a world database.
type Stats struct {
	Objects     int
	Sectors     int
	PlayerBuilt int
	// BuiltSectors is the number of sectors holding player built objects.
	BuiltSectors   int
	Ships          int
	BossStones     int
	DeadObjects    int
	GeneratedZones int
	Locations      int
	GlobalKeys     []string
	TopPrefabs     []PrefabCount
}

// PrefabCount is the number of objects of one prefab.
type PrefabCount struct {
	Prefab int32
	Name   string
	Count  int
}

// Label returns the prefab name, or its hash key form when unknown.
func (pc PrefabCount) Label() string {
	if pc.Name != "" {
		return pc.Name
	}
	return save.HashKey(pc.Prefab).String()
}

// CollectStats counts the objects of w. Prefabs not resolved on read are
// looked up in names, which may be nil. At most top prefabs are listed,
// most frequent first.
func CollectStats(w *save.World, rules Rules, names *stablehash.Registry, top int) (Stats, error) {
	c, err := rules.compile()
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		Objects:        len(w.Zdos),
		DeadObjects:    len(w.DeadZdos),
		GeneratedZones: len(w.Zones.GeneratedZones),
		Locations:      len(w.Zones.PrefabLocations),
		GlobalKeys:     w.Zones.ListGlobalKeys(),
	}
	sectors := map[Sector]bool{}
	built := map[Sector]bool{}
	counts := map[int32]*PrefabCount{}
	for _, z := range w.Zdos {
		sectors[z.Sector] = true
		if c.playerBuilt(z) {
			st.PlayerBuilt++
			built[z.Sector] = true
		}
		if c.ship(z) {
			st.Ships++
		}
		if c.bossStone(z) {
			st.BossStones++
		}

		pc, ok := counts[z.Prefab]
		if !ok {
			pc = &PrefabCount{Prefab: z.Prefab, Name: z.PrefabName}
			if pc.Name == "" {
				pc.Name, _ = names.Lookup(z.Prefab)
			}
			counts[z.Prefab] = pc
		}
		pc.Count++
	}
	st.Sectors = len(sectors)
	st.BuiltSectors = len(built)

	all := make([]PrefabCount, 0, len(counts))
	for _, pc := range counts {
		all = append(all, *pc)
	}
	slices.SortFunc(all, func(a, b PrefabCount) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Prefab, b.Prefab)
	})
	if top >= 0 && len(all) > top {
		all = all[:top]
	}
	st.TopPrefabs = all
	return st, nil
}
