package save

import (
	"github.com/dendrascience/valheim-save-tools/zpack"
	"go.uber.org/zap"
)

// MaxWorldVersion is the newest world database version this package
// understands. Metadata files share the same version number.
const MaxWorldVersion = 34

// World is the contents of a .db world database.
type World struct {
	Version     int         `json:"version"`
	NetTime     float64     `json:"netTime"`
	MyID        int64       `json:"myId"`
	NextUID     uint32      `json:"nextUid"`
	Zdos        []*Zdo      `json:"zdos"`
	DeadZdos    []DeadZdo   `json:"deadZdos,omitempty"`
	Zones       Zones       `json:"zones"`
	RandomEvent RandomEvent `json:"randomEvent"`
}

// RandomEvent is the state of the world's active random event.
type RandomEvent struct {
	Timer    float32       `json:"timer"`
	Name     string        `json:"name"`
	Num      float32       `json:"num"`
	Position zpack.Vector3 `json:"position"`
}

func (w *World) Type() Type { return TypeWorld }

// Legacy reports whether the world stores zdos in the pre-flag layout.
func (w *World) Legacy() bool { return w.Version < FlagFormatVersion }

func readWorld(p *zpack.Package, hints ReaderHints) (*World, error) {
	w := &World{Version: int(p.ReadInt32())}
	if err := hints.checkVersion("world", w.Version, MaxWorldVersion); err != nil {
		return nil, err
	}
	Logger().Info("reading world", zap.Int("version", w.Version))

	w.NetTime = p.ReadFloat64()
	w.MyID = p.ReadInt64()
	w.NextUID = p.ReadUint32()

	n := p.ReadCount32()
	w.Zdos = make([]*Zdo, 0, min(n, p.Remaining()))
	for range n {
		if w.Legacy() {
			w.Zdos = append(w.Zdos, readLegacyZdo(p, w.Version, hints))
		} else {
			w.Zdos = append(w.Zdos, readZdo(p, w.Version, hints))
		}
	}
	Logger().Info("loaded zdos", zap.Int("count", len(w.Zdos)))
	if w.Legacy() {
		w.DeadZdos = readDeadZdos(p)
	}

	w.Zones = readZones(p, w.Version)
	w.RandomEvent = RandomEvent{
		Timer:    p.ReadFloat32(),
		Name:     p.ReadString(),
		Num:      p.ReadFloat32(),
		Position: p.ReadVector3(),
	}
	return w, nil
}

func (w *World) encode(p *zpack.Package) error {
	p.WriteInt32(int32(w.Version))
	p.WriteFloat64(w.NetTime)
	p.WriteInt64(w.MyID)
	p.WriteUint32(w.NextUID)

	p.WriteInt32(int32(len(w.Zdos)))
	for _, z := range w.Zdos {
		if w.Legacy() {
			writeLegacyZdo(p, w.Version, z)
		} else {
			writeZdo(p, w.Version, z)
		}
	}
	if w.Legacy() {
		writeDeadZdos(p, w.DeadZdos)
	}

	writeZones(p, w.Version, &w.Zones)
	p.WriteFloat32(w.RandomEvent.Timer)
	p.WriteString(w.RandomEvent.Name)
	p.WriteFloat32(w.RandomEvent.Num)
	p.WriteVector3(w.RandomEvent.Position)
	return nil
}
