// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package launchpad

import (
	"encoding/binary"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/blake2b"
)

// Signer proves possession of the private key behind a public key.
// solana.PrivateKey satisfies it.
type Signer interface {
	PublicKey() solana.PublicKey
	Sign(payload []byte) (solana.Signature, error)
}

var _ Signer = solana.PrivateKey(nil)

// Role is a privilege bound to exactly one authority key
type Role uint8

const (
	RoleMintAuthority Role = iota + 1
	RoleFreezeAuthority
	RoleFeeWithdrawAuthority
)

func (r Role) String() string {
	switch r {
	case RoleMintAuthority:
		return "mint authority"
	case RoleFreezeAuthority:
		return "freeze authority"
	case RoleFeeWithdrawAuthority:
		return "fee withdraw authority"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

type authorityState uint8

const (
	authorityUnspecified authorityState = iota
	authorityNone
	authoritySome
)

// OptionalAuthority is an authority the caller may decline. The zero value
// is neither set nor omitted and is rejected by request validation.
type OptionalAuthority struct {
	key   solana.PublicKey
	state authorityState
}

// AuthorityOf names key as the authority
func AuthorityOf(key solana.PublicKey) OptionalAuthority {
	return OptionalAuthority{key: key, state: authoritySome}
}

// NoAuthority explicitly declines the authority
func NoAuthority() OptionalAuthority {
	return OptionalAuthority{state: authorityNone}
}

// IsSpecified reports whether the caller made an explicit choice
func (a OptionalAuthority) IsSpecified() bool {
	return a.state != authorityUnspecified
}

// Key returns the authority key, if one was named
func (a OptionalAuthority) Key() (solana.PublicKey, bool) {
	return a.key, a.state == authoritySome
}

// Pointer returns the authority key, or nil when declined
func (a OptionalAuthority) Pointer() *solana.PublicKey {
	if a.state != authoritySome {
		return nil
	}
	return a.key.ToPointer()
}

func (a OptionalAuthority) String() string {
	switch a.state {
	case authoritySome:
		return a.key.String()
	case authorityNone:
		return "none"
	default:
		return "unspecified"
	}
}

// Authorities are the resolved signer roles governing a mint
type Authorities struct {
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	// Only set for transfer fee mints
	FeeWithdrawAuthority *solana.PublicKey
}

// FeeConfigAuthority returns the key allowed to change the fee schedule,
// which is the mint authority
func (a Authorities) FeeConfigAuthority() solana.PublicKey {
	return a.MintAuthority
}

// ResolveAuthorities binds the request's keys to their roles. Every role
// key, the payer and the mint address must sign the request digest, even
// when one key fills several roles.
func ResolveAuthorities(req Request) (Authorities, error) {
	digest := RequestDigest(req)
	signers := make(map[solana.PublicKey]Signer, len(req.Signers))
	for _, signer := range req.Signers {
		signers[signer.PublicKey()] = signer
	}
	prove := func(key solana.PublicKey, kind ErrorKind, what string) error {
		return proveSigner(signers, key, digest[:], kind, what)
	}
	if err := prove(req.Payer, ErrorKindMissingSignature, "payer"); err != nil {
		return Authorities{}, err
	}
	if err := prove(req.MintAddress, ErrorKindMissingSignature, "mint address"); err != nil {
		return Authorities{}, err
	}
	ret := Authorities{MintAuthority: req.MintAuthority}
	if err := prove(req.MintAuthority, ErrorKindMintFailed, RoleMintAuthority.String()); err != nil {
		return Authorities{}, err
	}
	if key, ok := req.FreezeAuthority.Key(); ok {
		if err := prove(key, ErrorKindMintFailed, RoleFreezeAuthority.String()); err != nil {
			return Authorities{}, err
		}
		ret.FreezeAuthority = key.ToPointer()
	}
	if fee, ok := req.Extension.(TransferFee); ok {
		if err := prove(fee.WithdrawAuthority, ErrorKindTransferFeeInitFailed, RoleFeeWithdrawAuthority.String()); err != nil {
			return Authorities{}, err
		}
		ret.FeeWithdrawAuthority = fee.WithdrawAuthority.ToPointer()
	}
	return ret, nil
}

func proveSigner(
	signers map[solana.PublicKey]Signer,
	key solana.PublicKey,
	digest []byte,
	kind ErrorKind,
	what string,
) error {
	details := map[string]any{"signer": what, "key": key.String()}
	// Only keys on the curve have a private key that can sign
	if _, err := new(edwards25519.Point).SetBytes(key[:]); err != nil {
		return NewError(kind, what+" is not an ed25519 public key", details, err)
	}
	signer, ok := signers[key]
	if !ok {
		return NewError(kind, what+" did not sign the request", details, nil)
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return NewError(kind, what+" failed to sign the request", details, err)
	}
	if !key.Verify(digest, sig) {
		return NewError(kind, what+" signature does not verify", details, nil)
	}
	return nil
}

// RequestDigest returns the blake2b-256 hash signed by every signer of req
func RequestDigest(req Request) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("mint-launchpad/request/v1"))
	h.Write([]byte{req.Decimals})
	h.Write(req.Payer[:])
	h.Write(req.MintAddress[:])
	h.Write(req.MintAuthority[:])
	h.Write([]byte{byte(req.FreezeAuthority.state)})
	h.Write(req.FreezeAuthority.key[:])
	var tmp [8]byte
	switch ext := req.Extension.(type) {
	case TransferFee:
		h.Write([]byte{byte(ExtensionTagTransferFee)})
		binary.LittleEndian.PutUint16(tmp[:2], ext.BasisPoints)
		h.Write(tmp[:2])
		binary.LittleEndian.PutUint64(tmp[:], ext.MaximumFee)
		h.Write(tmp[:])
		h.Write(ext.WithdrawAuthority[:])
	case NonTransferable:
		h.Write([]byte{byte(ExtensionTagNonTransferable)})
	default:
		h.Write([]byte{byte(ExtensionTagNone)})
	}
	var ret [32]byte
	copy(ret[:], h.Sum(nil))
	return ret
}
