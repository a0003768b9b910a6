// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"sync"
)

// maxWindowWidth bounds the window width accepted by Precompute, per
// spec.md §6 ("W ∉ [1, 16]" is an error).
const maxWindowWidth = 16

// windowTable holds, for each of the ceil(256/w) window positions, one
// affine-ish (but Jacobian-typed for uniform arithmetic) multiple of the
// base point per possible w-bit digit value 0..2^w-1.  Index 0 of every row
// is the point at infinity, so a zero digit selects "add nothing" through
// the same constant-time scan used for every other digit instead of a
// special-cased branch.
type windowTable struct {
	w    uint
	rows [][]JacobianPoint
}

// PrecomputedPoint is the opaque handle returned by Precompute; it pairs a
// window table with the point it was built for.
type PrecomputedPoint struct {
	w     uint
	table windowTable
}

// buildWindowTable constructs the window table for point p with width w, by
// repeated doubling to advance the "base" multiple from one window position
// to the next, and repeated addition to fill in the 2^w per-window digit
// multiples.  This mirrors, at a smaller scale, the doubling-point
// construction in the pack's decred-dcrd genprecomps.go reference.
func buildWindowTable(p *JacobianPoint, w uint) windowTable {
	numWindows := (256 + int(w) - 1) / int(w)
	rows := make([][]JacobianPoint, numWindows)

	base := *p
	size := 1 << w
	for i := 0; i < numWindows; i++ {
		row := make([]JacobianPoint, size)
		row[0].SetInfinity()
		for j := 1; j < size; j++ {
			AddNonConst(&row[j-1], &base, &row[j])
		}
		rows[i] = row

		if i != numWindows-1 {
			next := base
			for b := uint(0); b < w; b++ {
				DoubleNonConst(&next, &next)
			}
			base = next
		}
	}
	return windowTable{w: w, rows: rows}
}

// extractWindow pulls a w-bit digit (0 <= digit < 2^w) out of the 4-limb
// little-endian scalar n starting at public bit position bitPos.  bitPos
// and w are always public (loop-counter derived); only n is secret, and it
// is only ever shifted and masked, never compared or branched on here.
func extractWindow(n *[4]uint64, bitPos, w uint) uint64 {
	limbIdx := bitPos / 64
	bitIdx := bitPos % 64

	lo := n[limbIdx] >> bitIdx
	if bitIdx+w > 64 && limbIdx+1 < 4 {
		lo |= n[limbIdx+1] << (64 - bitIdx)
	}
	if w >= 64 {
		return lo
	}
	return lo & ((uint64(1) << w) - 1)
}

// ctEq64 returns all-ones if x == y, else all-zeros, without branching on
// the comparison result.
func ctEq64(x, y uint64) uint64 {
	d := x ^ y
	d |= d >> 32
	d |= d >> 16
	d |= d >> 8
	d |= d >> 4
	d |= d >> 2
	d |= d >> 1
	return (d & 1) - 1
}

func selectFieldVal(mask uint64, a, b *FieldVal) FieldVal {
	var r FieldVal
	for i := 0; i < 4; i++ {
		r.n[i] = (a.n[i] & mask) | (b.n[i] &^ mask)
	}
	return r
}

func selectJacobian(mask uint64, a, b *JacobianPoint) JacobianPoint {
	var r JacobianPoint
	r.X = selectFieldVal(mask, &a.X, &b.X)
	r.Y = selectFieldVal(mask, &a.Y, &b.Y)
	r.Z = selectFieldVal(mask, &a.Z, &b.Z)
	return r
}

// ScalarMultConstTime computes k*P using pt's precomputed window table.  For
// every window position it scans every table entry and conditionally
// selects it with a constant-time mask (spec §4.5: "scanning all entries,
// no indexed load by secret index"); the number of selects and additions
// performed is fixed by pt's table shape alone, never by k.  The
// accumulation itself uses AddConstTime rather than AddNonConst: the
// latter's early-return for an infinite operand would otherwise let a
// zero digit (selected entry == infinity) take a different amount of
// time than any other digit, leaking it even though the table lookup
// above does not.
func ScalarMultConstTime(k *ModNScalar, pt *PrecomputedPoint) JacobianPoint {
	var result JacobianPoint
	result.SetInfinity()

	w := pt.table.w
	for i, row := range pt.table.rows {
		digit := extractWindow(&k.n, uint(i)*w, w)

		var selected JacobianPoint
		selected.SetInfinity()
		for j := range row {
			mask := ctEq64(digit, uint64(j))
			selected = selectJacobian(mask, &row[j], &selected)
		}

		AddConstTime(&result, &selected, &result)
	}
	return result
}

// ScalarMultNonConst computes result = k*p via plain variable-time
// double-and-add.  Only ever used where neither k nor p is secret (spec
// §5: the ECDSA verification equation u1*G + u2*Q operates on values
// derived entirely from the public signature and public key).
func ScalarMultNonConst(k *ModNScalar, p *JacobianPoint, result *JacobianPoint) {
	var acc JacobianPoint
	acc.SetInfinity()

	bytes := k.Bytes()
	for _, b := range bytes {
		for bit := 7; bit >= 0; bit-- {
			DoubleNonConst(&acc, &acc)
			if (b>>uint(bit))&1 == 1 {
				AddNonConst(&acc, p, &acc)
			}
		}
	}
	result.Set(&acc)
}

// precomputeCache is the process-wide cache of window tables stored by
// Precompute, keyed by the point's affine x || y coordinates (64 bytes).
// Each table is built before the mutex is taken and stored under it;
// re-priming a point with a new W replaces its stored table.
var precomputeCache = struct {
	mu    sync.Mutex
	byKey map[string]*PrecomputedPoint
}{byKey: make(map[string]*PrecomputedPoint)}

func pointCacheKey(p *JacobianPoint) string {
	x, y, err := p.ToAffineCoords()
	if err != nil {
		return "inf"
	}
	xb := x.Bytes()
	yb := y.Bytes()
	return string(xb[:]) + string(yb[:])
}

// Precompute is the idempotent cache-priming primitive described in
// spec.md §4.5/§6: building (or rebuilding, for a new w) the window table
// for p and storing it in the process-wide cache.  w must be in [1, 16].
func Precompute(w int, p *JacobianPoint) (*PrecomputedPoint, error) {
	if w < 1 || w > maxWindowWidth {
		return nil, Error{Err: ErrInvalidWindowWidth, Description: "window width must be in [1, 16]"}
	}

	key := pointCacheKey(p)
	handle := &PrecomputedPoint{w: uint(w), table: buildWindowTable(p, uint(w))}

	precomputeCache.mu.Lock()
	precomputeCache.byKey[key] = handle
	precomputeCache.mu.Unlock()
	return handle, nil
}

// defaultBaseWindowWidth is the default window width used for the base
// point's table (spec §4.5: "Default window size W = 8").
const defaultBaseWindowWidth = 8

var (
	basePointTableOnce sync.Once
	basePointTable      *PrecomputedPoint
)

// basePointHandle returns (building it on first call) the process-wide
// precomputed table for the generator G at the default window width.
func basePointHandle() *PrecomputedPoint {
	basePointTableOnce.Do(func() {
		var g JacobianPoint
		g.FromAffine(&curveGx, &curveGy)
		basePointTable = &PrecomputedPoint{w: defaultBaseWindowWidth, table: buildWindowTable(&g, defaultBaseWindowWidth)}
	})
	return basePointTable
}

// ScalarBaseMultConstTime computes k*G in constant time using the
// process-wide base-point table.
func ScalarBaseMultConstTime(k *ModNScalar) JacobianPoint {
	return ScalarMultConstTime(k, basePointHandle())
}
