// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package u128 implements checked unsigned 128-bit integers.
// Every arithmetic operation reports overflow, underflow and division by zero
// as an error instead of wrapping.
package u128

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const bits = 128

var (
	ErrOverflow   = errors.New("u128: overflow")
	ErrUnderflow  = errors.New("u128: underflow")
	ErrDivByZero  = errors.New("u128: division by zero")
	ErrOutOfRange = errors.New("u128: value out of range")
)

// Int is an unsigned 128-bit integer. The zero value is 0.
type Int struct {
	v uint256.Int
}

// Zero returns 0.
func Zero() Int { return Int{} }

// From64 converts an uint64.
func From64(x uint64) Int {
	var i Int
	i.v.SetUint64(x)
	return i
}

// FromBig converts a big.Int, failing when negative or wider than 128 bits.
func FromBig(b *big.Int) (Int, error) {
	if b == nil {
		return Int{}, nil
	}
	if b.Sign() < 0 || b.BitLen() > bits {
		return Int{}, ErrOutOfRange
	}
	var i Int
	i.v.SetFromBig(b)
	return i, nil
}

// FromDecimal parses a base 10 string.
func FromDecimal(s string) (Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Int{}, errors.Wrapf(err, "u128: parse %q", s)
	}
	if v.BitLen() > bits {
		return Int{}, ErrOutOfRange
	}
	return Int{v: *v}, nil
}

// MustFromDecimal is like FromDecimal but panics on error.
func MustFromDecimal(s string) Int {
	i, err := FromDecimal(s)
	if err != nil {
		panic(err)
	}
	return i
}

// Max returns 2^128 - 1.
func Max() Int {
	var i Int
	i.v[0] = ^uint64(0)
	i.v[1] = ^uint64(0)
	return i
}

// Add returns a + b.
func Add(a, b Int) (Int, error) {
	var r Int
	if _, overflow := r.v.AddOverflow(&a.v, &b.v); overflow || r.v.BitLen() > bits {
		return Int{}, ErrOverflow
	}
	return r, nil
}

// Sub returns a - b.
func Sub(a, b Int) (Int, error) {
	var r Int
	if _, underflow := r.v.SubOverflow(&a.v, &b.v); underflow {
		return Int{}, ErrUnderflow
	}
	return r, nil
}

// Mul returns a * b.
func Mul(a, b Int) (Int, error) {
	var r Int
	if _, overflow := r.v.MulOverflow(&a.v, &b.v); overflow || r.v.BitLen() > bits {
		return Int{}, ErrOverflow
	}
	return r, nil
}

// Div returns a / b, truncated toward zero.
func Div(a, b Int) (Int, error) {
	if b.IsZero() {
		return Int{}, ErrDivByZero
	}
	var r Int
	r.v.Div(&a.v, &b.v)
	return r, nil
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.v.IsZero() }

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int { return x.v.Cmp(&y.v) }

// Eq reports whether x == y.
func (x Int) Eq(y Int) bool { return x.v.Eq(&y.v) }

// IsUint64 reports whether x fits into an uint64.
func (x Int) IsUint64() bool { return x.v.IsUint64() }

// Uint64 returns the low 64 bits.
func (x Int) Uint64() uint64 { return x.v.Uint64() }

// Big returns a new big.Int holding x.
func (x Int) Big() *big.Int { return x.v.ToBig() }

// Bytes returns the 16 byte big endian representation, used as storage key.
func (x Int) Bytes() []byte {
	b := x.v.Bytes32()
	return b[16:]
}

func (x Int) String() string { return x.v.Dec() }

func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.v.Dec()), nil
}

func (x *Int) UnmarshalText(text []byte) error {
	v, err := FromDecimal(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (x Int) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &x.v)
}

// DecodeRLP implements rlp.Decoder.
func (x *Int) DecodeRLP(s *rlp.Stream) error {
	var v uint256.Int
	if err := s.ReadUint256(&v); err != nil {
		return err
	}
	if v.BitLen() > bits {
		return ErrOutOfRange
	}
	x.v = v
	return nil
}
