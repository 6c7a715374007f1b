package coord

// BlockRecord is stored next to a Key: [x, y, z, blockstate].
type BlockRecord [4]int64

func NewBlockRecord(p Point, blockstate int64) BlockRecord {
	return BlockRecord{int64(p.X), int64(p.Y), int64(p.Z), blockstate}
}

func (r BlockRecord) Point() Point {
	return Point{X: int(r[0]), Y: int(r[1]), Z: int(r[2])}
}

func (r BlockRecord) Blockstate() int64 {
	return r[3]
}
