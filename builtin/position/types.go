// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

// ID identifies a position. Ids are assigned from 1 upwards.
type ID uint64

func (id ID) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a decimal position id.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Data is the record of a governance position.
type Data struct {
	Owner     thor.Address `json:"owner"`
	Weight    u128.Int     `json:"weight"`
	CreatedAt uint64       `json:"createdAt"`
}

var (
	ErrTokenNotExists = errors.New("position: token not exists")
	ErrNotApproved    = errors.New("position: not approved")
)

// CustomError carries registry specific failures.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return "position: " + e.Message
}

func Custom(message string) error {
	return &CustomError{Message: message}
}
