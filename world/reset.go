package world

import (
	"slices"

	"github.com/dendrascience/valheim-save-tools/save"
	"go.uber.org/zap"
)

// ResetReport summarises a world reset.
type ResetReport struct {
	KeptSectors        int
	RemovedObjects     int
	RemovedDeadObjects int
	RemovedZones       int
	ResetLocations     int
}

// ResetWorld regenerates everything away from player bases. Only sectors
// holding a player built object or a boss stone keep their objects and
// generated zone entry. Locations outside those sectors are marked as not
// generated so the game places them again; the location records stay.
func ResetWorld(w *save.World, rules Rules) (ResetReport, error) {
	c, err := rules.compile()
	if err != nil {
		return ResetReport{}, err
	}

	keep := map[Sector]bool{}
	for _, z := range w.Zdos {
		if c.playerBuilt(z) || c.bossStone(z) {
			keep[z.Sector] = true
		}
	}
	r := ResetReport{KeptSectors: len(keep), RemovedDeadObjects: len(w.DeadZdos)}
	w.DeadZdos = nil

	zones := &w.Zones
	n := len(zones.GeneratedZones)
	zones.GeneratedZones = slices.DeleteFunc(zones.GeneratedZones, func(s Sector) bool { return !keep[s] })
	r.RemovedZones = n - len(zones.GeneratedZones)

	n = len(w.Zdos)
	w.Zdos = slices.DeleteFunc(w.Zdos, func(z *save.Zdo) bool { return !keep[z.Sector] })
	r.RemovedObjects = n - len(w.Zdos)

	for i := range zones.PrefabLocations {
		loc := &zones.PrefabLocations[i]
		if loc.Generated && !keep[SectorOf(loc.Position)] {
			loc.Generated = false
			r.ResetLocations++
		}
	}

	Logger().Info("reset world",
		zap.Int("keptSectors", r.KeptSectors),
		zap.Int("removedObjects", r.RemovedObjects),
		zap.Int("removedDeadObjects", r.RemovedDeadObjects),
		zap.Int("removedZones", r.RemovedZones),
		zap.Int("resetLocations", r.ResetLocations))
	return r, nil
}
