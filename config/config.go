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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"

	"github.com/blinklabs-io/mint-launchpad/launchpad"
	"github.com/blinklabs-io/mint-launchpad/ledger"
)

const (
	KindTaxed     = "taxed"
	KindSoulbound = "soulbound"
	KindBare      = "bare"
)

// RequestFile is a mint request as written by an operator. Keys are either
// base58 private keys or paths to solana-keygen JSON files.
type RequestFile struct {
	Kind              string       `yaml:"kind" validate:"required,oneof=taxed soulbound bare"`
	Decimals          uint8        `yaml:"decimals"`
	Payer             string       `yaml:"payer" validate:"required,keypair"`
	Mint              string       `yaml:"mint" validate:"keypair"`
	MintAuthority     string       `yaml:"mint_authority" validate:"required,keypair"`
	FreezeAuthority   string       `yaml:"freeze_authority" validate:"required_without=NoFreezeAuthority,excluded_with=NoFreezeAuthority,keypair"`
	NoFreezeAuthority bool         `yaml:"no_freeze_authority"`
	TransferFee       *TransferFee `yaml:"transfer_fee" validate:"required_if=Kind taxed"`
	// Credited to the payer when the ledger is created
	AirdropLamports uint64       `yaml:"airdrop_lamports"`
	Rent            *ledger.Rent `yaml:"rent"`
}

type TransferFee struct {
	BasisPoints       uint16 `yaml:"basis_points"`
	MaximumFee        uint64 `yaml:"maximum_fee"`
	WithdrawAuthority string `yaml:"withdraw_authority" validate:"required,keypair"`
}

// Resolved is a request file with every key loaded
type Resolved struct {
	Request launchpad.Request
	Payer   solana.PrivateKey
	Mint    solana.PrivateKey
	// Set when the file left the mint key empty
	GeneratedMint bool
}

// Load reads and validates the request file at path. Relative keygen files
// named in it are resolved against the directory of path.
func Load(path string) (*RequestFile, fs.FS, error) {
	fsys := os.DirFS(filepath.Dir(path))
	ret, err := LoadFromFS(fsys, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	return ret, fsys, nil
}

// LoadFromFS reads and validates the request file at path within fsys
func LoadFromFS(fsys fs.FS, path string) (*RequestFile, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

// Parse decodes and validates a YAML request. Unknown fields are rejected.
func Parse(data []byte) (*RequestFile, error) {
	ret := &RequestFile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(ret); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty request file")
		}
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks the request file against its field rules
func (r *RequestFile) Validate() error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Struct(r)
}

// Resolve loads every key named by the request, reading keygen files from
// fsys, and generates the mint key when none is given
func (r *RequestFile) Resolve(fsys fs.FS) (*Resolved, error) {
	load := func(name string, value string) (solana.PrivateKey, error) {
		key, err := loadKeypair(fsys, value)
		if err != nil {
			return nil, fmt.Errorf("load %s key: %w", name, err)
		}
		return key, nil
	}
	ret := &Resolved{}
	var err error
	if ret.Payer, err = load("payer", r.Payer); err != nil {
		return nil, err
	}
	if r.Mint == "" {
		if ret.Mint, err = solana.NewRandomPrivateKey(); err != nil {
			return nil, fmt.Errorf("generate mint key: %w", err)
		}
		ret.GeneratedMint = true
	} else if ret.Mint, err = load("mint", r.Mint); err != nil {
		return nil, err
	}
	mintAuthority, err := load("mint authority", r.MintAuthority)
	if err != nil {
		return nil, err
	}
	signers := []launchpad.Signer{ret.Payer, ret.Mint, mintAuthority}
	freeze := launchpad.NoAuthority()
	if !r.NoFreezeAuthority {
		key, err := load("freeze authority", r.FreezeAuthority)
		if err != nil {
			return nil, err
		}
		freeze = launchpad.AuthorityOf(key.PublicKey())
		signers = append(signers, key)
	}
	ret.Request = launchpad.Request{
		Decimals:        r.Decimals,
		Payer:           ret.Payer.PublicKey(),
		MintAddress:     ret.Mint.PublicKey(),
		MintAuthority:   mintAuthority.PublicKey(),
		FreezeAuthority: freeze,
	}
	switch r.Kind {
	case KindTaxed:
		withdraw, err := load("withdraw authority", r.TransferFee.WithdrawAuthority)
		if err != nil {
			return nil, err
		}
		signers = append(signers, withdraw)
		ret.Request.Extension = launchpad.TransferFee{
			BasisPoints:       r.TransferFee.BasisPoints,
			MaximumFee:        r.TransferFee.MaximumFee,
			WithdrawAuthority: withdraw.PublicKey(),
		}
	case KindSoulbound:
		ret.Request.Extension = launchpad.NonTransferable{}
	}
	ret.Request.Signers = signers
	return ret, nil
}

// LedgerRent returns the rent parameters named by the file, or the defaults
func (r *RequestFile) LedgerRent() ledger.Rent {
	if r.Rent == nil {
		return ledger.DefaultRent
	}
	return *r.Rent
}

func isKeygenFile(value string) bool {
	return strings.HasSuffix(value, ".json")
}

func loadKeypair(fsys fs.FS, value string) (solana.PrivateKey, error) {
	if !isKeygenFile(value) {
		return solana.PrivateKeyFromBase58(value)
	}
	var data []byte
	var err error
	if filepath.IsAbs(value) {
		data, err = os.ReadFile(value)
	} else {
		data, err = fs.ReadFile(fsys, value)
	}
	if err != nil {
		return nil, err
	}
	return solana.PrivateKeyFromSolanaKeygenFileBytes(data)
}
