// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package u128

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	sum, err := Add(From64(7), From64(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), sum.Uint64())

	diff, err := Sub(From64(7), From64(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), diff.Uint64())

	prod, err := Mul(From64(7), From64(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(35), prod.Uint64())

	quo, err := Div(From64(7), From64(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), quo.Uint64())
}

func TestCheckedBounds(t *testing.T) {
	_, err := Add(Max(), From64(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Mul(Max(), From64(2))
	assert.ErrorIs(t, err, ErrOverflow)

	// the product fits 256 bits but not 128
	_, err = Mul(From64(1<<63), MustFromDecimal("36893488147419103232")) // 2^65
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Sub(From64(1), From64(2))
	assert.ErrorIs(t, err, ErrUnderflow)

	_, err = Div(From64(1), Zero())
	assert.ErrorIs(t, err, ErrDivByZero)

	max, err := Add(Max(), Zero())
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", max.String())
}

func TestFromBig(t *testing.T) {
	_, err := FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = FromBig(new(big.Int).Lsh(big.NewInt(1), 128))
	assert.ErrorIs(t, err, ErrOutOfRange)

	v, err := FromBig(big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, 0, v.Big().Cmp(big.NewInt(42)))
}

func TestBytesKey(t *testing.T) {
	b := From64(0x0102).Bytes()
	assert.Len(t, b, 16)
	assert.Equal(t, byte(0x01), b[14])
	assert.Equal(t, byte(0x02), b[15])
}

func TestRLP(t *testing.T) {
	type record struct {
		Amount Int
		Time   uint64
	}
	in := record{Amount: MustFromDecimal("123456789012345678901234567890"), Time: 9}
	raw, err := rlp.EncodeToBytes(&in)
	require.NoError(t, err)

	var out record
	require.NoError(t, rlp.DecodeBytes(raw, &out))
	assert.True(t, in.Amount.Eq(out.Amount))
	assert.Equal(t, in.Time, out.Time)
}

func TestText(t *testing.T) {
	var v Int
	require.NoError(t, v.UnmarshalText([]byte("1000")))
	assert.Equal(t, uint64(1000), v.Uint64())

	assert.Error(t, v.UnmarshalText([]byte("-1")))
	assert.Error(t, v.UnmarshalText([]byte("340282366920938463463374607431768211456")))

	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1000", string(text))
}
