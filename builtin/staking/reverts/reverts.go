// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind classifies why a staking operation reverted.
type Kind uint8

const (
	KindNone Kind = iota
	InvalidState
	Unauthorized
	InvalidTimeWindow
	TokenError
	PositionError
)

func (k Kind) String() string {
	switch k {
	case InvalidState:
		return "InvalidState"
	case Unauthorized:
		return "Unauthorized"
	case InvalidTimeWindow:
		return "InvalidTimeWindow"
	case TokenError:
		return "TokenError"
	case PositionError:
		return "PositionError"
	default:
		return "None"
	}
}

type ErrRevert struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Wrap reverts with kind, keeping cause reachable through errors.Is/As.
func Wrap(kind Kind, cause error, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
		cause:   cause,
	}
}

func NewInvalidState(message string) *ErrRevert      { return New(InvalidState, message) }
func NewUnauthorized(message string) *ErrRevert      { return New(Unauthorized, message) }
func NewInvalidTimeWindow(message string) *ErrRevert { return New(InvalidTimeWindow, message) }

// Overflow reports checked arithmetic failing on a bookkeeping value.
func Overflow(cause error, what string) *ErrRevert {
	return Wrap(InvalidState, cause, what)
}

func Token(cause error) *ErrRevert    { return Wrap(TokenError, cause, "token call failed") }
func Position(cause error) *ErrRevert { return Wrap(PositionError, cause, "position call failed") }

func (e *ErrRevert) Kind() Kind { return e.kind }

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

// Bytes returns the revert reason ABI-encoded as Error(string).
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}
	msg := []byte(e.Error())

	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	padded := ((len(msg) + 31) / 32) * 32
	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, []byte{0x08, 0xc3, 0x79, 0xa0})
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)
	return encoded
}

func IsRevertErr(err any) bool {
	return KindOf(err) != KindNone
}

// KindOf returns the kind of the outermost revert in err's chain.
func KindOf(err any) Kind {
	if err == nil {
		return KindNone
	}
	e, ok := err.(error)
	if !ok {
		return KindNone
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve.kind
	}
	return KindNone
}
