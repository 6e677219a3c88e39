/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package bigint

import (
	"math/big"
)

// Int is an unbounded, non-negative integer.
type Int struct {
	v big.Int
}

// Zero returns the integer 0.
func Zero() Int {
	return Int{}
}

// FromUint64 builds an Int from a native unsigned integer.
func FromUint64(u uint64) Int {
	var i Int
	i.v.SetUint64(u)
	return i
}

// FromBytes builds an Int from big-endian magnitude bytes (no sign byte).
func FromBytes(b []byte) Int {
	var i Int
	i.v.SetBytes(b)
	return i
}

// IsZero reports whether the value is 0.
func (i Int) IsZero() bool {
	return i.v.Sign() == 0
}

// Cmp compares i to j: -1, 0 or 1.
func (i Int) Cmp(j Int) int {
	return i.v.Cmp(&j.v)
}

// Add returns i+j.
func (i Int) Add(j Int) Int {
	var r Int
	r.v.Add(&i.v, &j.v)
	return r
}

// Sub returns i-j. The result is undefined (clamped to 0) if j > i, since
// the type is non-negative.
func (i Int) Sub(j Int) Int {
	var r Int
	if i.Cmp(j) < 0 {
		return Zero()
	}
	r.v.Sub(&i.v, &j.v)
	return r
}

// Mul returns i*j.
func (i Int) Mul(j Int) Int {
	var r Int
	r.v.Mul(&i.v, &j.v)
	return r
}

// Div returns i/j (integer division).
func (i Int) Div(j Int) Int {
	var r Int
	r.v.Div(&i.v, &j.v)
	return r
}

// Mod returns i%j.
func (i Int) Mod(j Int) Int {
	var r Int
	r.v.Mod(&i.v, &j.v)
	return r
}

// And returns the bitwise AND of i and j.
func (i Int) And(j Int) Int {
	var r Int
	r.v.And(&i.v, &j.v)
	return r
}

// Or returns the bitwise OR of i and j.
func (i Int) Or(j Int) Int {
	var r Int
	r.v.Or(&i.v, &j.v)
	return r
}

// Xor returns the bitwise XOR of i and j.
func (i Int) Xor(j Int) Int {
	var r Int
	r.v.Xor(&i.v, &j.v)
	return r
}

// Lsh returns i<<k.
func (i Int) Lsh(k uint) Int {
	var r Int
	r.v.Lsh(&i.v, k)
	return r
}

// Rsh returns i>>k.
func (i Int) Rsh(k uint) Int {
	var r Int
	r.v.Rsh(&i.v, k)
	return r
}

// String renders the decimal representation, for logging and error text.
func (i Int) String() string {
	return i.v.String()
}

// Uint64 returns the value as a uint64 and whether it fit without
// truncation.
func (i Int) Uint64() (uint64, bool) {
	if !i.v.IsUint64() {
		return 0, false
	}
	return i.v.Uint64(), true
}

// Unstack drains up to math.MaxUint64 from the least-significant end of i
// into the returned accumulator, decrementing i by the amount drained. It
// bridges an unbounded BigInt into a bounded native accumulator, as used
// when a caller only has a fixed-width buffer to fill.
func (i *Int) Unstack() uint64 {
	var max big.Int
	max.SetUint64(^uint64(0))

	if i.v.Cmp(&max) <= 0 {
		out := i.v.Uint64()
		i.v.SetUint64(0)
		return out
	}

	i.v.Sub(&i.v, &max)
	return max.Uint64()
}
