// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package call

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// MustSign signs the envelope using the provided private key.
// It panics if signing fails.
func MustSign(e *Envelope, pk *ecdsa.PrivateKey) *Envelope {
	signed, err := Sign(e, pk)
	if err != nil {
		panic(err)
	}
	return signed
}

// Sign returns a copy of the envelope signed with the provided private key.
func Sign(e *Envelope, pk *ecdsa.PrivateKey) (*Envelope, error) {
	sig, err := crypto.Sign(e.SigningHash().Bytes(), pk)
	if err != nil {
		return nil, fmt.Errorf("unable to sign call: %w", err)
	}
	return e.WithSignature(sig), nil
}
