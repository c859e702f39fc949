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
	"errors"
	"fmt"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

// ErrorKind is one entry of the fixed failure taxonomy
type ErrorKind string

const (
	ErrorKindInvalidFeeConfig          ErrorKind = "invalid_fee_config"
	ErrorKindAccountAlreadyInUse       ErrorKind = "account_already_in_use"
	ErrorKindInsufficientFunds         ErrorKind = "insufficient_funds"
	ErrorKindMintFailed                ErrorKind = "mint_failed"
	ErrorKindTransferFeeInitFailed     ErrorKind = "transfer_fee_init_failed"
	ErrorKindNonTransferableInitFailed ErrorKind = "non_transferable_init_failed"
	ErrorKindMissingSignature          ErrorKind = "missing_signature"
)

// Error is a provisioning failure classified into the taxonomy. Match it with
// errors.Is against the Err* sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidFeeConfig          = &Error{Kind: ErrorKindInvalidFeeConfig, Message: "invalid fee config"}
	ErrAccountAlreadyInUse       = &Error{Kind: ErrorKindAccountAlreadyInUse, Message: "account already in use"}
	ErrInsufficientFunds         = &Error{Kind: ErrorKindInsufficientFunds, Message: "insufficient funds"}
	ErrMintFailed                = &Error{Kind: ErrorKindMintFailed, Message: "mint initialization failed"}
	ErrTransferFeeInitFailed     = &Error{Kind: ErrorKindTransferFeeInitFailed, Message: "transfer fee initialization failed"}
	ErrNonTransferableInitFailed = &Error{Kind: ErrorKindNonTransferableInitFailed, Message: "non-transferable initialization failed"}
	ErrMissingSignature          = &Error{Kind: ErrorKindMissingSignature, Message: "missing required signature"}
)

// ErrInvalidTransition is the cause attached when an operation is attempted
// from a state that does not allow it
var ErrInvalidTransition = errors.New("invalid state transition")

// NewError creates a new classified error
func NewError(
	kind ErrorKind,
	message string,
	details map[string]any,
	cause error,
) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// KindOf returns the taxonomy kind of err, or "" when err is unclassified
func KindOf(err error) ErrorKind {
	var tmpErr *Error
	if errors.As(err, &tmpErr) {
		return tmpErr.Kind
	}
	return ""
}

// reportAllocateError classifies a failure of the account creation primitive
func reportAllocateError(err error, details map[string]any) error {
	var tmpErr *Error
	switch {
	case errors.As(err, &tmpErr):
		return err
	case errors.Is(err, ledger.ErrAccountAlreadyInUse):
		return NewError(ErrorKindAccountAlreadyInUse, "mint address already holds an account", details, err)
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrRentNotExempt):
		return NewError(ErrorKindInsufficientFunds, "payer cannot fund rent-exempt mint account", details, err)
	default:
		return NewError(ErrorKindMintFailed, "mint account allocation failed", details, err)
	}
}

// reportError classifies a failure of a token runtime primitive as kind
func reportError(kind ErrorKind, message string, err error, details map[string]any) error {
	var tmpErr *Error
	if errors.As(err, &tmpErr) {
		return err
	}
	return NewError(kind, message, details, err)
}
