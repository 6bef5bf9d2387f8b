package world

import (
	"fmt"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/pixil98/go-errors"
)

// DefaultThreshold is the structure density below which a sector and its
// neighbourhood are cleared.
const DefaultThreshold = 10

// Rules decide which objects are player built and which sectors cleanup
// must leave alone. All names are compared by stable hash.
type Rules struct {
	// CreatorProperty marks an object as player built when present in any
	// of its property tables.
	CreatorProperty string `yaml:"creatorProperty"`
	// TerrainPrefabs are prefabs that count as player built without a
	// creator property.
	TerrainPrefabs []string `yaml:"terrainPrefabs"`
	// DensityExcluded prefabs are removed with their sector but do not count
	// towards its density.
	DensityExcluded []string `yaml:"densityExcluded"`
	ShipPrefabs     []string `yaml:"shipPrefabs"`
	ShipProperty    string   `yaml:"shipProperty"`
	BossStones      []string `yaml:"bossStones"`
	Threshold       int      `yaml:"threshold"`
}

// DefaultRules returns the rules the game's own prefabs call for.
func DefaultRules() Rules {
	return Rules{
		CreatorProperty: "creator",
		TerrainPrefabs:  []string{"digg"},
		DensityExcluded: []string{"raise", "cultivate", "digg", "paved_road", "mud_road", "path", "replant"},
		ShipPrefabs:     []string{"Raft", "VikingShip", "Karve"},
		ShipProperty:    "rudder",
		BossStones: []string{
			"BossStone_Eikthyr",
			"BossStone_TheElder",
			"BossStone_Bonemass",
			"BossStone_DragonQueen",
			"BossStone_Yagluth",
		},
		Threshold: DefaultThreshold,
	}
}

// Validate reports every problem with the rules at once.
func (r Rules) Validate() error {
	el := errors.NewErrorList()
	if r.Threshold < 0 {
		el.Add(fmt.Errorf("%w: %d", ErrNegativeThreshold, r.Threshold))
	}
	if r.CreatorProperty == "" {
		el.Add(fmt.Errorf("%w: creatorProperty", ErrEmptyName))
	}
	if r.ShipProperty == "" {
		el.Add(fmt.Errorf("%w: shipProperty", ErrEmptyName))
	}
	lists := []struct {
		key   string
		names []string
	}{
		{"terrainPrefabs", r.TerrainPrefabs},
		{"densityExcluded", r.DensityExcluded},
		{"shipPrefabs", r.ShipPrefabs},
		{"bossStones", r.BossStones},
	}
	for _, l := range lists {
		for i, name := range l.names {
			if name == "" {
				el.Add(fmt.Errorf("%w: %s[%d]", ErrEmptyName, l.key, i))
			}
		}
	}
	return el.Err()
}

// classifier is Rules compiled down to hashes.
type classifier struct {
	creator  int32
	shipProp int32
	terrain  map[int32]bool
	excluded map[int32]bool
	ships    map[int32]bool
	bosses   map[int32]bool
}

func (r Rules) compile() (*classifier, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &classifier{
		creator:  stablehash.Hash(r.CreatorProperty),
		shipProp: stablehash.Hash(r.ShipProperty),
		terrain:  hashSet(r.TerrainPrefabs),
		excluded: hashSet(r.DensityExcluded),
		ships:    hashSet(r.ShipPrefabs),
		bosses:   hashSet(r.BossStones),
	}, nil
}

func hashSet(names []string) map[int32]bool {
	set := make(map[int32]bool, len(names))
	for _, n := range names {
		set[stablehash.Hash(n)] = true
	}
	return set
}

func (c *classifier) playerBuilt(z *save.Zdo) bool {
	return z.HasProperty(c.creator) || c.terrain[z.Prefab]
}

// density reports whether a player built object counts towards the density
// of its sector.
func (c *classifier) density(z *save.Zdo) bool {
	return !c.excluded[z.Prefab]
}

func (c *classifier) ship(z *save.Zdo) bool {
	return c.ships[z.Prefab] || z.HasProperty(c.shipProp)
}

func (c *classifier) bossStone(z *save.Zdo) bool {
	return c.bosses[z.Prefab]
}
