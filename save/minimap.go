package save

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/dendrascience/valheim-save-tools/zpack"
)

// MaxMinimapVersion is the newest minimap version this package understands.
const MaxMinimapVersion = 7

// compressedMinimapVersion is the first minimap version whose body is stored
// as a gzip sub-package.
const compressedMinimapVersion = 7

// Minimap is a character's exploration state and pins for one world.
type Minimap struct {
	Version         int      `json:"version"`
	TextureSize     int32    `json:"textureSize"`
	Explored        []byte   `json:"explored"`
	ExploredOthers  []byte   `json:"exploredOthers,omitempty"`
	Pins            []MapPin `json:"pins"`
	VisibleToOthers bool     `json:"visibleToOthers"`

	// blob and body are the compressed sub-package as read and its
	// decompressed bytes. An unchanged body is written back as blob.
	blob []byte
	body []byte
}

// MapPin is a marker placed on the minimap.
type MapPin struct {
	Name     string        `json:"name"`
	Position zpack.Vector3 `json:"position"`
	Type     PinType       `json:"type"`
	Checked  bool          `json:"checked"`
	OwnerID  int64         `json:"ownerId"`
}

// PinType is the icon of a map pin.
type PinType int32

var pinTypeNames = []string{
	"Icon0", "Icon1", "Icon2", "Icon3", "Death", "Bed", "Icon4",
	"Shout", "None", "Boss", "Player", "RandomEvent", "Ping", "EventArea",
}

func (t PinType) String() string {
	if t >= 0 && int(t) < len(pinTypeNames) {
		return pinTypeNames[t]
	}
	return strconv.Itoa(int(t))
}

var mapPinLayout = layout[MapPin]{
	{
		read:  func(p *zpack.Package, m *MapPin) { m.Name = p.ReadString() },
		write: func(p *zpack.Package, m *MapPin) { p.WriteString(m.Name) },
	},
	{
		read:  func(p *zpack.Package, m *MapPin) { m.Position = p.ReadVector3() },
		write: func(p *zpack.Package, m *MapPin) { p.WriteVector3(m.Position) },
	},
	{
		read:  func(p *zpack.Package, m *MapPin) { m.Type = PinType(p.ReadInt32()) },
		write: func(p *zpack.Package, m *MapPin) { p.WriteInt32(int32(m.Type)) },
	},
	{
		since: 3,
		read:  func(p *zpack.Package, m *MapPin) { m.Checked = p.ReadBool() },
		write: func(p *zpack.Package, m *MapPin) { p.WriteBool(m.Checked) },
	},
	{
		since: 6,
		read:  func(p *zpack.Package, m *MapPin) { m.OwnerID = p.ReadInt64() },
		write: func(p *zpack.Package, m *MapPin) { p.WriteInt64(m.OwnerID) },
	},
}

func readMinimap(p *zpack.Package, hints ReaderHints) (*Minimap, error) {
	m := &Minimap{Version: int(p.ReadInt32())}
	if err := hints.checkVersion("minimap", m.Version, MaxMinimapVersion); err != nil {
		return nil, err
	}
	if m.Version < compressedMinimapVersion {
		m.readBody(p)
		return m, nil
	}
	sub, blob := p.ReadCompressed()
	m.blob, m.body = blob, sub.Bytes()
	m.readBody(sub)
	return m, nil
}

func (m *Minimap) readBody(p *zpack.Package) {
	m.TextureSize = p.ReadInt32()
	size := m.exploredSize()
	m.Explored = p.ReadBytes(size)
	if m.Version >= 5 {
		m.ExploredOthers = p.ReadBytes(size)
	}
	if m.Version >= 2 {
		n := p.ReadCount32()
		m.Pins = make([]MapPin, 0, min(n, p.Remaining()))
		for range n {
			var pin MapPin
			mapPinLayout.read(p, m.Version, &pin)
			m.Pins = append(m.Pins, pin)
		}
	}
	if m.Version >= 4 {
		m.VisibleToOthers = p.ReadBool()
	}
}

func (m *Minimap) exploredSize() int {
	return int(m.TextureSize) * int(m.TextureSize)
}

func (m *Minimap) encode(p *zpack.Package) error {
	if err := m.check(); err != nil {
		return err
	}
	p.WriteInt32(int32(m.Version))
	if m.Version < compressedMinimapVersion {
		m.writeBody(p)
		return nil
	}
	body := zpack.New()
	m.writeBody(body)
	if m.blob != nil && bytes.Equal(body.Bytes(), m.body) {
		p.WriteRaw(m.blob)
		return nil
	}
	return p.WriteCompressed(func(sub *zpack.Package) error {
		sub.WriteBytes(body.Bytes())
		return nil
	})
}

func (m *Minimap) writeBody(p *zpack.Package) {
	p.WriteInt32(m.TextureSize)
	p.WriteBytes(m.Explored)
	if m.Version >= 5 {
		p.WriteBytes(m.ExploredOthers)
	}
	if m.Version >= 2 {
		p.WriteInt32(int32(len(m.Pins)))
		for i := range m.Pins {
			mapPinLayout.write(p, m.Version, &m.Pins[i])
		}
	}
	if m.Version >= 4 {
		p.WriteBool(m.VisibleToOthers)
	}
}

// check rejects exploration layers that do not match the texture size, since
// the reader derives their length from it.
func (m *Minimap) check() error {
	size := m.exploredSize()
	if len(m.Explored) != size {
		return fmt.Errorf("minimap explored layer has %d bytes, texture size %d needs %d", len(m.Explored), m.TextureSize, size)
	}
	if m.Version >= 5 && len(m.ExploredOthers) != size {
		return fmt.Errorf("minimap shared explored layer has %d bytes, texture size %d needs %d", len(m.ExploredOthers), m.TextureSize, size)
	}
	return nil
}
