package save

import (
	"github.com/dendrascience/valheim-save-tools/zpack"
	"go.uber.org/zap"
)

// MaxCharacterVersion is the newest character file version this package
// understands.
const MaxCharacterVersion = 37

// Character is the contents of a .fch character file.
type Character struct {
	Version    int          `json:"version"`
	Kills      int32        `json:"kills"`
	Deaths     int32        `json:"deaths"`
	Crafts     int32        `json:"crafts"`
	Builds     int32        `json:"builds"`
	Worlds     []WorldEntry `json:"worlds"`
	PlayerName string       `json:"playerName"`
	PlayerID   int64        `json:"playerId"`
	StartSeed  string       `json:"startSeed"`
	PlayerData *PlayerData  `json:"playerData,omitempty"`
}

// WorldEntry is the per-world state of a character, keyed by world uid.
type WorldEntry struct {
	WorldUID int64           `json:"worldUid"`
	Data     WorldPlayerData `json:"data"`
}

// WorldPlayerData holds the points of interest a character has in one world.
type WorldPlayerData struct {
	HaveCustomSpawn bool          `json:"haveCustomSpawn"`
	Spawn           zpack.Vector3 `json:"spawn"`
	HaveLogout      bool          `json:"haveLogout"`
	Logout          zpack.Vector3 `json:"logout"`
	HaveDeath       bool          `json:"haveDeath"`
	Death           zpack.Vector3 `json:"death"`
	Home            zpack.Vector3 `json:"home"`
	Minimap         *Minimap      `json:"minimap,omitempty"`
}

func (c *Character) Type() Type { return TypeCharacter }

// World returns the entry for the world with the given uid.
func (c *Character) World(uid int64) (*WorldPlayerData, bool) {
	for i := range c.Worlds {
		if c.Worlds[i].WorldUID == uid {
			return &c.Worlds[i].Data, true
		}
	}
	return nil, false
}

func readCharacter(p *zpack.Package, hints ReaderHints) (*Character, error) {
	c := &Character{}
	err := p.ReadFramed(func(p *zpack.Package) error {
		c.Version = int(p.ReadInt32())
		if err := hints.checkVersion("character", c.Version, MaxCharacterVersion); err != nil {
			return err
		}
		if c.Version >= 28 {
			c.Kills = p.ReadInt32()
			c.Deaths = p.ReadInt32()
			c.Crafts = p.ReadInt32()
			c.Builds = p.ReadInt32()
		}
		n := p.ReadCount32()
		c.Worlds = make([]WorldEntry, 0, min(n, p.Remaining()))
		for range n {
			e := WorldEntry{WorldUID: p.ReadInt64()}
			if err := readWorldPlayerData(p, c.Version, hints, &e.Data); err != nil {
				return err
			}
			c.Worlds = append(c.Worlds, e)
		}
		Logger().Info("loaded character worlds", zap.Int("count", len(c.Worlds)))
		c.PlayerName = p.ReadString()
		c.PlayerID = p.ReadInt64()
		c.StartSeed = p.ReadString()
		if !p.ReadBool() {
			return nil
		}
		return p.ReadFramed(func(p *zpack.Package) error {
			pd, err := readPlayerData(p, hints)
			c.PlayerData = pd
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	p.SkipTrailer()
	return c, nil
}

func (c *Character) encode(p *zpack.Package) error {
	return p.WriteHashedFramed(func(p *zpack.Package) error {
		p.WriteInt32(int32(c.Version))
		if c.Version >= 28 {
			p.WriteInt32(c.Kills)
			p.WriteInt32(c.Deaths)
			p.WriteInt32(c.Crafts)
			p.WriteInt32(c.Builds)
		}
		p.WriteInt32(int32(len(c.Worlds)))
		for i := range c.Worlds {
			p.WriteInt64(c.Worlds[i].WorldUID)
			if err := writeWorldPlayerData(p, c.Version, &c.Worlds[i].Data); err != nil {
				return err
			}
		}
		p.WriteString(c.PlayerName)
		p.WriteInt64(c.PlayerID)
		p.WriteString(c.StartSeed)
		p.WriteBool(c.PlayerData != nil)
		if c.PlayerData == nil {
			return nil
		}
		return p.WriteFramed(c.PlayerData.encode)
	})
}

func readWorldPlayerData(p *zpack.Package, version int, hints ReaderHints, d *WorldPlayerData) error {
	d.HaveCustomSpawn = p.ReadBool()
	d.Spawn = p.ReadVector3()
	d.HaveLogout = p.ReadBool()
	d.Logout = p.ReadVector3()
	if version >= 30 {
		d.HaveDeath = p.ReadBool()
		d.Death = p.ReadVector3()
	}
	d.Home = p.ReadVector3()
	if version < 29 || !p.ReadBool() {
		return nil
	}
	return p.ReadFramed(func(p *zpack.Package) error {
		m, err := readMinimap(p, hints)
		d.Minimap = m
		return err
	})
}

func writeWorldPlayerData(p *zpack.Package, version int, d *WorldPlayerData) error {
	p.WriteBool(d.HaveCustomSpawn)
	p.WriteVector3(d.Spawn)
	p.WriteBool(d.HaveLogout)
	p.WriteVector3(d.Logout)
	if version >= 30 {
		p.WriteBool(d.HaveDeath)
		p.WriteVector3(d.Death)
	}
	p.WriteVector3(d.Home)
	if version < 29 {
		return nil
	}
	p.WriteBool(d.Minimap != nil)
	if d.Minimap == nil {
		return nil
	}
	return p.WriteFramed(d.Minimap.encode)
}
