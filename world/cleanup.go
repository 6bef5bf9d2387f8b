package world

import (
	"github.com/dendrascience/valheim-save-tools/save"
	"go.uber.org/zap"
)

// Report summarises a structure cleanup.
type Report struct {
	// RemovedObjects is the number of player built objects deleted.
	RemovedObjects int
	// AffectedSectors is the number of sectors objects were deleted from.
	AffectedSectors int
	KeptSectors     int
	ClearSectors    int
}

type sectorState uint8

const (
	stateKeep sectorState = iota + 1
	stateClear
)

// CleanStructures removes isolated player built objects from w.
//
// Every sector holding player built objects is classified. A sector is kept
// when its own density, or the density of its 3x3 neighbourhood, reaches
// rules.Threshold. Clear sectors touching a kept sector are then kept as well,
// repeatedly, so thin connections between bases survive. Sectors holding a
// ship are always kept. Player built objects in the remaining clear sectors
// are removed; nothing else is touched.
func CleanStructures(w *save.World, rules Rules) (Report, error) {
	c, err := rules.compile()
	if err != nil {
		return Report{}, err
	}
	log := Logger().With(zap.Int("threshold", rules.Threshold))

	state := classifySectors(w.Zdos, c, rules.Threshold)
	promoted := propagateKeep(state)
	log.Debug("propagated keep set", zap.Int("promoted", promoted))

	for _, z := range w.Zdos {
		if c.ship(z) && state[z.Sector] == stateClear {
			log.Debug("keeping sector with ship", zap.Int32("x", z.Sector.X), zap.Int32("y", z.Sector.Y))
			state[z.Sector] = stateKeep
		}
	}

	var r Report
	for _, st := range state {
		if st == stateKeep {
			r.KeptSectors++
		} else {
			r.ClearSectors++
		}
	}

	affected := map[Sector]bool{}
	kept := w.Zdos[:0]
	for _, z := range w.Zdos {
		if state[z.Sector] == stateClear && c.playerBuilt(z) {
			log.Debug("removing object",
				zap.String("prefab", prefabLabel(z)),
				zap.Int32("x", z.Sector.X),
				zap.Int32("y", z.Sector.Y))
			affected[z.Sector] = true
			r.RemovedObjects++
			continue
		}
		kept = append(kept, z)
	}
	clear(w.Zdos[len(kept):])
	w.Zdos = kept
	r.AffectedSectors = len(affected)

	log.Info("cleaned structures",
		zap.Int("removed", r.RemovedObjects),
		zap.Int("affectedSectors", r.AffectedSectors),
		zap.Int("keptSectors", r.KeptSectors),
		zap.Int("clearSectors", r.ClearSectors))
	return r, nil
}

// classifySectors runs the density pass over every sector holding player
// built objects.
func classifySectors(zdos []*save.Zdo, c *classifier, threshold int) map[Sector]sectorState {
	density := map[Sector]int{}
	built := map[Sector]bool{}
	for _, z := range zdos {
		if !c.playerBuilt(z) {
			continue
		}
		built[z.Sector] = true
		if c.density(z) {
			density[z.Sector]++
		}
	}

	state := make(map[Sector]sectorState, len(built))
	for _, s := range sortedSectors(built) {
		own := density[s]
		if own >= threshold {
			state[s] = stateKeep
			continue
		}
		sum := own
		for _, n := range neighbours(s) {
			sum += density[n]
		}
		if sum >= threshold {
			state[s] = stateKeep
			continue
		}
		state[s] = stateClear
		Logger().Debug("sector below threshold",
			zap.Int32("x", s.X),
			zap.Int32("y", s.Y),
			zap.Int("density", own),
			zap.Int("neighbourhood", sum))
	}
	return state
}

// propagateKeep promotes every clear sector connected to a kept sector
// through 8-neighbourhood steps. Sectors only move from clear to keep, so the
// work list drains after at most one visit per sector. It returns the number
// of promoted sectors.
func propagateKeep(state map[Sector]sectorState) int {
	var queue []Sector
	for _, s := range sortedSectors(state) {
		if state[s] == stateKeep {
			queue = append(queue, s)
		}
	}
	promoted := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, n := range neighbours(s) {
			if state[n] == stateClear {
				state[n] = stateKeep
				promoted++
				queue = append(queue, n)
			}
		}
	}
	return promoted
}

func prefabLabel(z *save.Zdo) string {
	if z.PrefabName != "" {
		return z.PrefabName
	}
	return save.HashKey(z.Prefab).String()
}
