// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package call defines the signed envelope external clients submit to have
// a contract method executed on their behalf.
package call

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/thor"
)

var (
	ErrInvalidSignature = errors.New("call: invalid signature")
	ErrChainTagMismatch = errors.New("call: chain tag mismatch")
)

// Envelope is a contract call signed by its caller.
type Envelope struct {
	ChainTag  byte            `json:"chainTag"`
	Contract  thor.Address    `json:"contract"`
	Method    string          `json:"method"`
	Args      json.RawMessage `json:"args,omitempty"`
	Nonce     uint64          `json:"nonce"`
	Timestamp uint64          `json:"timestamp,omitempty"`
	Signature hexutil.Bytes   `json:"signature,omitempty"`
}

// SigningHash returns the hash of the envelope without its signature.
func (e *Envelope) SigningHash() thor.Bytes32 {
	return thor.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			e.ChainTag,
			e.Contract.Bytes(),
			e.Method,
			compactArgs(e.Args),
			e.Nonce,
			e.Timestamp,
		})
	})
}

// Origin recovers the address that signed the envelope.
func (e *Envelope) Origin() (thor.Address, error) {
	if len(e.Signature) != crypto.SignatureLength {
		return thor.Address{}, ErrInvalidSignature
	}
	pub, err := crypto.SigToPub(e.SigningHash().Bytes(), e.Signature)
	if err != nil {
		return thor.Address{}, errors.WithMessage(ErrInvalidSignature, err.Error())
	}
	return thor.Address(crypto.PubkeyToAddress(*pub)), nil
}

// ID identifies the envelope signed by origin. Two envelopes differing
// only in signature share an ID when they recover to the same origin.
func (e *Envelope) ID(origin thor.Address) thor.Bytes32 {
	return thor.Blake2b(e.SigningHash().Bytes(), origin.Bytes())
}

// Verify checks the chain tag and returns the origin and ID of the envelope.
func (e *Envelope) Verify(chainTag byte) (origin thor.Address, id thor.Bytes32, err error) {
	if e.ChainTag != chainTag {
		return thor.Address{}, thor.Bytes32{}, errors.WithMessagef(ErrChainTagMismatch, "want %d, got %d", chainTag, e.ChainTag)
	}
	if origin, err = e.Origin(); err != nil {
		return thor.Address{}, thor.Bytes32{}, err
	}
	return origin, e.ID(origin), nil
}

// WithSignature returns a copy of the envelope carrying sig.
func (e *Envelope) WithSignature(sig []byte) *Envelope {
	cpy := *e
	cpy.Signature = append([]byte(nil), sig...)
	return &cpy
}

// args are signed in compact form so re-encoding by a client library does
// not invalidate the signature.
func compactArgs(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
