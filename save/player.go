package save

import (
	"strconv"

	"github.com/dendrascience/valheim-save-tools/zpack"
	"go.uber.org/zap"
)

// Newest versions of the player data records this package understands.
const (
	MaxPlayerDataVersion = 26
	MaxSkillsVersion     = 2
)

// PlayerData is the in-game state of a character: vitals, inventory,
// knowledge, appearance and skills.
type PlayerData struct {
	Version               int                `json:"version"`
	MaxHealth             float32            `json:"maxHealth"`
	Health                float32            `json:"health"`
	Stamina               float32            `json:"stamina"`
	FirstSpawn            bool               `json:"firstSpawn"`
	TimeSinceDeath        float32            `json:"timeSinceDeath"`
	GuardianPower         string             `json:"guardianPower"`
	GuardianPowerCooldown float32            `json:"guardianPowerCooldown"`
	ZdoID                 *ZdoID             `json:"zdoId,omitempty"`
	Inventory             Inventory          `json:"inventory"`
	KnownRecipes          []string           `json:"knownRecipes"`
	KnownStations         []Station          `json:"knownStations"`
	KnownMaterials        []string           `json:"knownMaterials"`
	ShownTutorials        []string           `json:"shownTutorials"`
	Uniques               []string           `json:"uniques"`
	Trophies              []string           `json:"trophies"`
	KnownBiomes           []Biome            `json:"knownBiomes"`
	KnownTexts            []zpack.StringPair `json:"knownTexts"`
	Beard                 string             `json:"beard"`
	Hair                  string             `json:"hair"`
	SkinColor             zpack.Vector3      `json:"skinColor"`
	HairColor             zpack.Vector3      `json:"hairColor"`
	ModelIndex            int32              `json:"modelIndex"`
	Foods                 []Food             `json:"foods"`
	SkillsVersion         int                `json:"skillsVersion"`
	Skills                []Skill            `json:"skills"`
	CustomData            []zpack.StringPair `json:"customData,omitempty"`
	// LateStamina is the stamina value stored after the custom data block.
	LateStamina float32 `json:"lateStamina"`
	MaxEitr     float32 `json:"maxEitr"`
	Eitr        float32 `json:"eitr"`
}

// Station is a crafting station the character has discovered.
type Station struct {
	Name  string `json:"name"`
	Level int32  `json:"level"`
}

// Food is an active food buff.
type Food struct {
	Name    string  `json:"name"`
	Health  float32 `json:"health"`
	Stamina float32 `json:"stamina"`
}

// Skill is the progress of one skill.
type Skill struct {
	ID          int32   `json:"id"`
	Level       float32 `json:"level"`
	Accumulator float32 `json:"accumulator"`
}

// Biome is a biome id as stored in the known biomes list.
type Biome int32

const (
	BiomeMeadows     Biome = 1
	BiomeSwamp       Biome = 2
	BiomeMountain    Biome = 4
	BiomeBlackForest Biome = 8
	BiomePlains      Biome = 16
	BiomeAshLands    Biome = 32
	BiomeDeepNorth   Biome = 64
	BiomeOcean       Biome = 256
	BiomeMistlands   Biome = 512
)

var biomeNames = map[Biome]string{
	BiomeMeadows:     "Meadows",
	BiomeSwamp:       "Swamp",
	BiomeMountain:    "Mountain",
	BiomeBlackForest: "BlackForest",
	BiomePlains:      "Plains",
	BiomeAshLands:    "AshLands",
	BiomeDeepNorth:   "DeepNorth",
	BiomeOcean:       "Ocean",
	BiomeMistlands:   "Mistlands",
}

func (b Biome) String() string {
	if name, ok := biomeNames[b]; ok {
		return name
	}
	return strconv.Itoa(int(b))
}

// Known reports whether b is one of the named biomes.
func (b Biome) Known() bool {
	_, ok := biomeNames[b]
	return ok
}

var playerVitalsLayout = layout[PlayerData]{
	{
		since: 7,
		read:  func(p *zpack.Package, d *PlayerData) { d.MaxHealth = p.ReadFloat32() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteFloat32(d.MaxHealth) },
	},
	{
		read:  func(p *zpack.Package, d *PlayerData) { d.Health = p.ReadFloat32() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteFloat32(d.Health) },
	},
	{
		since: 10,
		read:  func(p *zpack.Package, d *PlayerData) { d.Stamina = p.ReadFloat32() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteFloat32(d.Stamina) },
	},
	{
		since: 8,
		read:  func(p *zpack.Package, d *PlayerData) { d.FirstSpawn = p.ReadBool() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteBool(d.FirstSpawn) },
	},
	{
		since: 20,
		read:  func(p *zpack.Package, d *PlayerData) { d.TimeSinceDeath = p.ReadFloat32() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteFloat32(d.TimeSinceDeath) },
	},
	{
		since: 23,
		read:  func(p *zpack.Package, d *PlayerData) { d.GuardianPower = p.ReadString() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteString(d.GuardianPower) },
	},
	{
		since: 24,
		read:  func(p *zpack.Package, d *PlayerData) { d.GuardianPowerCooldown = p.ReadFloat32() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteFloat32(d.GuardianPowerCooldown) },
	},
	{
		since: 2,
		until: 3,
		read: func(p *zpack.Package, d *PlayerData) {
			id := readZdoID(p)
			d.ZdoID = &id
		},
		write: func(p *zpack.Package, d *PlayerData) {
			var id ZdoID
			if d.ZdoID != nil {
				id = *d.ZdoID
			}
			writeZdoID(p, id)
		},
	},
}

var playerTrailerLayout = layout[PlayerData]{
	{
		since: 26,
		read:  func(p *zpack.Package, d *PlayerData) { d.CustomData = p.ReadStringMap() },
		write: func(p *zpack.Package, d *PlayerData) { p.WriteStringMap(d.CustomData) },
	},
	{
		since: 26,
		read: func(p *zpack.Package, d *PlayerData) {
			d.LateStamina = p.ReadFloat32()
			d.MaxEitr = p.ReadFloat32()
			d.Eitr = p.ReadFloat32()
		},
		write: func(p *zpack.Package, d *PlayerData) {
			p.WriteFloat32(d.LateStamina)
			p.WriteFloat32(d.MaxEitr)
			p.WriteFloat32(d.Eitr)
		},
	},
}

func readPlayerData(p *zpack.Package, hints ReaderHints) (*PlayerData, error) {
	d := &PlayerData{Version: int(p.ReadInt32())}
	if err := hints.checkVersion("playerdata", d.Version, MaxPlayerDataVersion); err != nil {
		return nil, err
	}
	playerVitalsLayout.read(p, d.Version, d)

	inv, err := readInventory(p, hints)
	if err != nil {
		return nil, err
	}
	d.Inventory = *inv

	d.KnownRecipes = p.ReadStringSet()
	n := p.ReadCount32()
	d.KnownStations = make([]Station, 0, min(n, p.Remaining()))
	for range n {
		name := p.ReadString()
		d.KnownStations = append(d.KnownStations, Station{Name: name, Level: p.ReadInt32()})
	}
	d.KnownMaterials = p.ReadStringSet()
	d.ShownTutorials = p.ReadStringSet()
	d.Uniques = p.ReadStringSet()
	d.Trophies = p.ReadStringSet()

	n = p.ReadCount32()
	d.KnownBiomes = make([]Biome, 0, min(n, p.Remaining()))
	for range n {
		b := Biome(p.ReadInt32())
		if !b.Known() {
			Logger().Warn("unknown biome", zap.Int32("id", int32(b)))
		}
		d.KnownBiomes = append(d.KnownBiomes, b)
	}
	d.KnownTexts = p.ReadStringMap()

	d.Beard = p.ReadString()
	d.Hair = p.ReadString()
	d.SkinColor = p.ReadVector3()
	d.HairColor = p.ReadVector3()
	d.ModelIndex = p.ReadInt32()

	n = p.ReadCount32()
	d.Foods = make([]Food, 0, min(n, p.Remaining()))
	for range n {
		d.Foods = append(d.Foods, Food{Name: p.ReadString(), Health: p.ReadFloat32(), Stamina: p.ReadFloat32()})
	}

	d.SkillsVersion = int(p.ReadInt32())
	if err := hints.checkVersion("skills", d.SkillsVersion, MaxSkillsVersion); err != nil {
		return nil, err
	}
	n = p.ReadCount32()
	d.Skills = make([]Skill, 0, min(n, p.Remaining()))
	for range n {
		d.Skills = append(d.Skills, Skill{ID: p.ReadInt32(), Level: p.ReadFloat32(), Accumulator: p.ReadFloat32()})
	}

	playerTrailerLayout.read(p, d.Version, d)
	return d, nil
}

func (d *PlayerData) encode(p *zpack.Package) error {
	p.WriteInt32(int32(d.Version))
	playerVitalsLayout.write(p, d.Version, d)
	d.Inventory.encode(p)

	p.WriteStringSet(d.KnownRecipes)
	p.WriteInt32(int32(len(d.KnownStations)))
	for _, s := range d.KnownStations {
		p.WriteString(s.Name)
		p.WriteInt32(s.Level)
	}
	p.WriteStringSet(d.KnownMaterials)
	p.WriteStringSet(d.ShownTutorials)
	p.WriteStringSet(d.Uniques)
	p.WriteStringSet(d.Trophies)

	p.WriteInt32(int32(len(d.KnownBiomes)))
	for _, b := range d.KnownBiomes {
		p.WriteInt32(int32(b))
	}
	p.WriteStringMap(d.KnownTexts)

	p.WriteString(d.Beard)
	p.WriteString(d.Hair)
	p.WriteVector3(d.SkinColor)
	p.WriteVector3(d.HairColor)
	p.WriteInt32(d.ModelIndex)

	p.WriteInt32(int32(len(d.Foods)))
	for _, f := range d.Foods {
		p.WriteString(f.Name)
		p.WriteFloat32(f.Health)
		p.WriteFloat32(f.Stamina)
	}

	p.WriteInt32(int32(d.SkillsVersion))
	p.WriteInt32(int32(len(d.Skills)))
	for _, s := range d.Skills {
		p.WriteInt32(s.ID)
		p.WriteFloat32(s.Level)
		p.WriteFloat32(s.Accumulator)
	}

	playerTrailerLayout.write(p, d.Version, d)
	return nil
}
