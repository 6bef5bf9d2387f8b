package cmd

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/stablehash"
	"github.com/dendrascience/valheim-save-tools/world"
	"github.com/dendrascience/valheim-save-tools/zpack"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

type seedOptions struct {
	output     string
	seedName   string
	worldName  string
	playerName string
	bases      int
	objects    int
}

var (
	seedBuildPieces = []string{"woodwall", "wood_floor", "stone_wall_2x1"}
	seedScenery     = []string{"Pinetree_01", "Rock_3", "Beech1", "Bush01"}
)

// NewSeedCmd creates and returns the seed subcommand.
// It writes a small synthetic world and character for testing.
func NewSeedCmd() *cobra.Command {
	var (
		opts    seedOptions
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic set of archives for testing",
		Long: `Generate a world metadata file, a world database and a character file.

The world holds a number of player bases made of building pieces, a ship,
a boss altar and scattered scenery. The layout is derived from the seed name,
so the same seed name always produces the same archives.`,
		Run: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(verbose)
			defer logger.Sync()

			if err := runSeed(opts, os.Stdout); err != nil {
				log.Fatalf("Seed failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().StringVarP(&opts.seedName, "seed-name", "s", "HHcLC5acQt", "World seed name")
	cmd.Flags().StringVar(&opts.worldName, "world-name", "Seeded", "World name, also the .fwl and .db file name")
	cmd.Flags().StringVar(&opts.playerName, "player-name", "Tester", "Character name, also the .fch file name")
	cmd.Flags().IntVarP(&opts.bases, "bases", "b", 3, "Number of player bases")
	cmd.Flags().IntVarP(&opts.objects, "objects", "n", 200, "Number of scenery objects")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(opts seedOptions, out io.Writer) error {
	if opts.bases < 0 || opts.objects < 0 {
		return fmt.Errorf("bases and objects must not be negative")
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	rng := rand.New(rand.NewPCG(uint64(colorhash.HashString(opts.seedName)), uint64(uint32(stablehash.Hash(opts.seedName)))))
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(opts.worldName+"/"+opts.seedName))
	uid := int64(binary.LittleEndian.Uint64(id[:8]) & math.MaxInt64)

	meta := &save.Metadata{
		Version:         save.MaxWorldVersion,
		Name:            opts.worldName,
		SeedName:        opts.seedName,
		Seed:            stablehash.Hash(opts.seedName),
		UID:             uid,
		WorldGenVersion: 2,
		NeedsDB:         true,
	}
	w := seedWorld(rng, opts)
	c := seedCharacter(rng, opts, uid)

	files := []struct {
		archive save.Archive
		name    string
	}{
		{meta, opts.worldName + ".fwl"},
		{w, opts.worldName + ".db"},
		{c, opts.playerName + ".fch"},
	}
	for _, f := range files {
		path := filepath.Join(opts.output, f.name)
		if err := save.WriteFile(f.archive, path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	fmt.Fprintf(out, "Seeded %d bases and %d objects in %d zdos\n", opts.bases, opts.objects, len(w.Zdos))
	return nil
}

// seedPosition returns a random point in sector s.
func seedPosition(rng *rand.Rand, s world.Sector) zpack.Vector3 {
	half := float32(world.SectorSize / 2)
	return zpack.Vector3{
		X: float32(s.X*world.SectorSize) - half + rng.Float32()*float32(world.SectorSize-1),
		Y: 30 + rng.Float32()*10,
		Z: float32(s.Y*world.SectorSize) - half + rng.Float32()*float32(world.SectorSize-1),
	}
}

func seedZdo(rng *rand.Rand, s world.Sector, prefab string) *save.Zdo {
	pos := seedPosition(rng, s)
	return &save.Zdo{
		Sector:     world.SectorOf(pos),
		Position:   pos,
		Prefab:     stablehash.Hash(prefab),
		Persistent: true,
	}
}

func seedWorld(rng *rand.Rand, opts seedOptions) *save.World {
	w := &save.World{
		Version: save.MaxWorldVersion,
		NetTime: 3600 + rng.Float64()*100000,
		MyID:    rng.Int64(),
		Zones: save.Zones{
			PgwVersion:         99,
			LocationVersion:    1,
			LocationsGenerated: true,
			GlobalKeys:         []string{},
		},
	}
	creator := rng.Int64N(1 << 40)
	sectors := map[world.Sector]bool{}
	add := func(z *save.Zdo) {
		w.Zdos = append(w.Zdos, z)
		sectors[z.Sector] = true
	}

	for range opts.bases {
		base := world.Sector{X: rng.Int32N(40) - 20, Y: rng.Int32N(40) - 20}
		pieces := 15 + rng.IntN(30)
		for range pieces {
			z := seedZdo(rng, base, seedBuildPieces[rng.IntN(len(seedBuildPieces))])
			z.Longs.Set(save.HashKey(stablehash.Hash("creator")), creator)
			z.Floats.Set(save.HashKey(stablehash.Hash("health")), 100+rng.Float32()*300)
			add(z)
		}
		ship := seedZdo(rng, world.Sector{X: base.X + 1, Y: base.Y}, "Raft")
		ship.Longs.Set(save.HashKey(stablehash.Hash("creator")), creator)
		add(ship)
	}

	altar := world.Sector{X: 30, Y: -30}
	add(seedZdo(rng, altar, "BossStone_Eikthyr"))
	for range opts.objects {
		s := world.Sector{X: rng.Int32N(80) - 40, Y: rng.Int32N(80) - 40}
		add(seedZdo(rng, s, seedScenery[rng.IntN(len(seedScenery))]))
	}

	for i, z := range w.Zdos {
		z.Type = uint8(i % 2)
	}
	w.NextUID = uint32(len(w.Zdos) + 1)
	w.Zones.GeneratedZones = sortedKeys(sectors)
	w.Zones.PrefabLocations = []save.PrefabLocation{
		{Name: "StartTemple", Position: zpack.Vector3{Y: 30}, Generated: true},
		{Name: "Eikthyrnir", Position: seedPosition(rng, altar), Generated: true},
		{Name: "Crypt2", Position: seedPosition(rng, world.Sector{X: -12, Y: 7})},
	}
	return w
}

func sortedKeys(set map[world.Sector]bool) []zpack.Vector2i {
	out := make([]zpack.Vector2i, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b zpack.Vector2i) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return out
}

func seedCharacter(rng *rand.Rand, opts seedOptions, worldUID int64) *save.Character {
	const textureSize = 8
	explored := make([]byte, textureSize*textureSize)
	for i := range explored {
		if rng.IntN(3) == 0 {
			explored[i] = 1
		}
	}
	home := zpack.Vector3{Y: 30}

	return &save.Character{
		Version:    save.MaxCharacterVersion,
		Kills:      rng.Int32N(100),
		Deaths:     rng.Int32N(10),
		Crafts:     rng.Int32N(200),
		Builds:     rng.Int32N(500),
		PlayerName: opts.playerName,
		PlayerID:   rng.Int64N(1 << 40),
		StartSeed:  opts.seedName,
		Worlds: []save.WorldEntry{{
			WorldUID: worldUID,
			Data: save.WorldPlayerData{
				HaveLogout: true,
				Logout:     home,
				Home:       home,
				Minimap: &save.Minimap{
					Version:        save.MaxMinimapVersion,
					TextureSize:    textureSize,
					Explored:       explored,
					ExploredOthers: make([]byte, len(explored)),
					Pins: []save.MapPin{
						{Name: "home", Position: home, Type: 5}, // bed
					},
				},
			},
		}},
		PlayerData: &save.PlayerData{
			Version:    save.MaxPlayerDataVersion,
			MaxHealth:  25,
			Health:     25,
			Stamina:    50,
			FirstSpawn: false,
			Inventory: save.Inventory{
				Version: save.MaxInventoryVersion,
				Items: []save.Item{
					{Name: "AxeStone", Stack: 1, Durability: 100, Equipped: true, Quality: 1, CrafterID: 1, CrafterName: opts.playerName},
					{Name: "Wood", Stack: int32(1 + rng.IntN(50)), GridPos: zpack.Vector2i{X: 1}, Quality: 1},
				},
			},
			KnownRecipes:  []string{"Recipe_AxeStone"},
			KnownBiomes:   []save.Biome{save.BiomeMeadows},
			Beard:         "Beard1",
			Hair:          "Hair1",
			SkinColor:     zpack.Vector3{X: 1, Y: 1, Z: 1},
			HairColor:     zpack.Vector3{X: 0.5, Y: 0.4, Z: 0.3},
			SkillsVersion: save.MaxSkillsVersion,
			Skills:        []save.Skill{{ID: 7, Level: float32(rng.IntN(20))}},
			LateStamina:   50,
		},
	}
}
