package atomiccell

import "math/big"

// BigIntCell holds an arbitrary-precision integer behind the same
// read-compute-CAS retry loop Transform uses, since unlike a machine word a
// big.Int has no hardware fetch-add primitive: every mutation allocates a
// fresh *big.Int and races to install it via Cell's CAS.
type BigIntCell struct {
	cell *Cell[*big.Int]
}

// NewBigIntCell creates a cell holding the given initial value.
func NewBigIntCell(initial int64) *BigIntCell {
	return &BigIntCell{cell: New[*big.Int](big.NewInt(initial))}
}

// Get returns a copy of the current value; the caller may mutate it freely.
func (b *BigIntCell) Get() *big.Int {
	return new(big.Int).Set(b.cell.Get())
}

// AddAndGet adds delta and returns the new value.
func (b *BigIntCell) AddAndGet(delta int64) *big.Int {
	return new(big.Int).Set(b.cell.TransformAndGet(func(cur *big.Int) *big.Int {
		return new(big.Int).Add(cur, big.NewInt(delta))
	}))
}

// GetAndAdd adds delta and returns the value prior to the add.
func (b *BigIntCell) GetAndAdd(delta int64) *big.Int {
	return new(big.Int).Set(b.cell.GetAndTransform(func(cur *big.Int) *big.Int {
		return new(big.Int).Add(cur, big.NewInt(delta))
	}))
}

func (b *BigIntCell) IncrementAndGet() *big.Int { return b.AddAndGet(1) }
func (b *BigIntCell) DecrementAndGet() *big.Int { return b.AddAndGet(-1) }
