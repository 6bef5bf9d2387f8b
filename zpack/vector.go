package zpack

// Vector3 is a position or direction in world space.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quaternion is a rotation.
type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Vector2i is an integer grid coordinate.
type Vector2i struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func (p *Package) ReadVector3() Vector3 {
	return Vector3{X: p.ReadFloat32(), Y: p.ReadFloat32(), Z: p.ReadFloat32()}
}

func (p *Package) WriteVector3(v Vector3) {
	p.WriteFloat32(v.X)
	p.WriteFloat32(v.Y)
	p.WriteFloat32(v.Z)
}

func (p *Package) ReadQuaternion() Quaternion {
	return Quaternion{X: p.ReadFloat32(), Y: p.ReadFloat32(), Z: p.ReadFloat32(), W: p.ReadFloat32()}
}

func (p *Package) WriteQuaternion(q Quaternion) {
	p.WriteFloat32(q.X)
	p.WriteFloat32(q.Y)
	p.WriteFloat32(q.Z)
	p.WriteFloat32(q.W)
}

// ReadVector2i reads a coordinate stored as two int32 values.
func (p *Package) ReadVector2i() Vector2i {
	return Vector2i{X: p.ReadInt32(), Y: p.ReadInt32()}
}

func (p *Package) WriteVector2i(v Vector2i) {
	p.WriteInt32(v.X)
	p.WriteInt32(v.Y)
}

// ReadVector2s reads a coordinate stored as two int16 values.
func (p *Package) ReadVector2s() Vector2i {
	return Vector2i{X: int32(p.ReadInt16()), Y: int32(p.ReadInt16())}
}

// WriteVector2s writes v as two int16 values. Components outside the int16
// range are truncated.
func (p *Package) WriteVector2s(v Vector2i) {
	p.WriteInt16(int16(v.X))
	p.WriteInt16(int16(v.Y))
}
