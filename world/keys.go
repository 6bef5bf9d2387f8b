package world

import (
	"github.com/dendrascience/valheim-save-tools/save"
	"go.uber.org/zap"
)

// AddGlobalKeys adds each key that w does not already have and returns how
// many were added.
func AddGlobalKeys(w *save.World, keys ...string) int {
	added := 0
	for _, k := range keys {
		if w.Zones.AddGlobalKey(k) {
			added++
			Logger().Info("added global key", zap.String("key", k))
		}
	}
	return added
}

// RemoveGlobalKeys removes each key from w, where save.AllGlobalKeys clears
// them all, and returns how many keys were removed.
func RemoveGlobalKeys(w *save.World, keys ...string) int {
	before := len(w.Zones.GlobalKeys)
	for _, k := range keys {
		if !w.Zones.RemoveGlobalKey(k) {
			Logger().Debug("global key not present", zap.String("key", k))
		}
	}
	return before - len(w.Zones.GlobalKeys)
}
