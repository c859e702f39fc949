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

package token

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrIncorrectProgramID          = errors.New("account not owned by token program")
	ErrAlreadyInitialized          = errors.New("mint already initialized")
	ErrNotInitialized              = errors.New("mint not initialized")
	ErrInvalidAccountData          = errors.New("invalid mint account data")
	ErrExtensionAlreadyInitialized = errors.New("extension already initialized")
	ErrTransferFeeExceedsMaximum   = errors.New("transfer fee exceeds maximum basis points")
	ErrNonTransferable             = errors.New("transfers are disabled for this mint")
)

// ExtensionError indicates a failure initializing one extension on a mint
type ExtensionError struct {
	Extension ExtensionType
	Mint      solana.PublicKey
	Err       error
}

func (e ExtensionError) Error() string {
	return fmt.Sprintf(
		"initialize %s extension on mint %s: %v",
		e.Extension,
		e.Mint,
		e.Err,
	)
}

func (e ExtensionError) Unwrap() error { return e.Err }
