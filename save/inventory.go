package save

import (
	"github.com/dendrascience/valheim-save-tools/zpack"
)

// MaxInventoryVersion is the newest inventory version this package
// understands.
const MaxInventoryVersion = 104

// Inventory is the contents of a character's inventory grid.
type Inventory struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// Item is one stack in an inventory slot.
type Item struct {
	Name        string             `json:"name"`
	Stack       int32              `json:"stack"`
	Durability  float32            `json:"durability"`
	GridPos     zpack.Vector2i     `json:"gridPos"`
	Equipped    bool               `json:"equipped"`
	Quality     int32              `json:"quality"`
	Variant     int32              `json:"variant"`
	CrafterID   int64              `json:"crafterId"`
	CrafterName string             `json:"crafterName"`
	CustomData  []zpack.StringPair `json:"customData,omitempty"`
}

var itemLayout = layout[Item]{
	{
		read:  func(p *zpack.Package, it *Item) { it.Name = p.ReadString() },
		write: func(p *zpack.Package, it *Item) { p.WriteString(it.Name) },
	},
	{
		read:  func(p *zpack.Package, it *Item) { it.Stack = p.ReadInt32() },
		write: func(p *zpack.Package, it *Item) { p.WriteInt32(it.Stack) },
	},
	{
		read:  func(p *zpack.Package, it *Item) { it.Durability = p.ReadFloat32() },
		write: func(p *zpack.Package, it *Item) { p.WriteFloat32(it.Durability) },
	},
	{
		read:  func(p *zpack.Package, it *Item) { it.GridPos = p.ReadVector2i() },
		write: func(p *zpack.Package, it *Item) { p.WriteVector2i(it.GridPos) },
	},
	{
		read:  func(p *zpack.Package, it *Item) { it.Equipped = p.ReadBool() },
		write: func(p *zpack.Package, it *Item) { p.WriteBool(it.Equipped) },
	},
	{
		since: 101,
		read:  func(p *zpack.Package, it *Item) { it.Quality = p.ReadInt32() },
		write: func(p *zpack.Package, it *Item) { p.WriteInt32(it.Quality) },
	},
	{
		since: 102,
		read:  func(p *zpack.Package, it *Item) { it.Variant = p.ReadInt32() },
		write: func(p *zpack.Package, it *Item) { p.WriteInt32(it.Variant) },
	},
	{
		since: 103,
		read: func(p *zpack.Package, it *Item) {
			it.CrafterID = p.ReadInt64()
			it.CrafterName = p.ReadString()
		},
		write: func(p *zpack.Package, it *Item) {
			p.WriteInt64(it.CrafterID)
			p.WriteString(it.CrafterName)
		},
	},
	{
		since: 104,
		read:  func(p *zpack.Package, it *Item) { it.CustomData = p.ReadStringMap() },
		write: func(p *zpack.Package, it *Item) { p.WriteStringMap(it.CustomData) },
	},
}

func readInventory(p *zpack.Package, hints ReaderHints) (*Inventory, error) {
	inv := &Inventory{Version: int(p.ReadInt32())}
	if err := hints.checkVersion("inventory", inv.Version, MaxInventoryVersion); err != nil {
		return nil, err
	}
	n := p.ReadCount32()
	inv.Items = make([]Item, 0, min(n, p.Remaining()))
	for range n {
		it := Item{Quality: 1}
		itemLayout.read(p, inv.Version, &it)
		inv.Items = append(inv.Items, it)
	}
	return inv, nil
}

func (inv *Inventory) encode(p *zpack.Package) {
	p.WriteInt32(int32(inv.Version))
	p.WriteInt32(int32(len(inv.Items)))
	for i := range inv.Items {
		itemLayout.write(p, inv.Version, &inv.Items[i])
	}
}
