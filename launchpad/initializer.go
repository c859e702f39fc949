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
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

// State is a step of the mint provisioning state machine
type State uint8

const (
	StateUnallocated State = iota
	StateAllocated
	StateExtensionsConfigured
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateUnallocated:
		return "Unallocated"
	case StateAllocated:
		return "Allocated"
	case StateExtensionsConfigured:
		return "ExtensionsConfigured"
	case StateInitialized:
		return "Initialized"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Initialized has no outgoing transitions
var stateTransitions = map[State][]State{
	StateUnallocated:          {StateAllocated},
	StateAllocated:            {StateExtensionsConfigured},
	StateExtensionsConfigured: {StateInitialized},
}

// CanTransition reports whether the state machine allows moving from s to
// next
func (s State) CanTransition(next State) bool {
	for _, tmp := range stateTransitions[s] {
		if tmp == next {
			return true
		}
	}
	return false
}

// MintInitializer drives one mint address through allocation, extension
// configuration and finalization inside a single atomic unit
type MintInitializer struct {
	host        Host
	runtime     Runtime
	provisioner AccountProvisioner
	configurer  *ExtensionConfigurer
	address     solana.PublicKey
	state       State
	extension   Extension
	logger      *slog.Logger
}

// NewMintInitializer returns an initializer for address in StateUnallocated
func NewMintInitializer(
	host Host,
	rt Runtime,
	address solana.PublicKey,
	logger *slog.Logger,
) *MintInitializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MintInitializer{
		host:       host,
		runtime:    rt,
		configurer: NewExtensionConfigurer(rt),
		address:    address,
		logger:     logger,
	}
}

func (m *MintInitializer) State() State {
	return m.state
}

// Extension returns the configured extension, or nil
func (m *MintInitializer) Extension() Extension {
	return m.extension
}

// Allocate creates the backing account of space bytes, funded by payer
func (m *MintInitializer) Allocate(payer solana.PublicKey, space uint64) error {
	if !m.state.CanTransition(StateAllocated) {
		return m.transitionError(
			ErrorKindAccountAlreadyInUse,
			"allocate",
		)
	}
	if err := m.provisioner.Allocate(m.host, payer, m.address, m.runtime.ProgramID(), space); err != nil {
		return err
	}
	m.transition(StateAllocated)
	return nil
}

// Configure attaches ext to the allocated account. A nil ext is the empty
// configuration step. Outside StateAllocated it fails with the extension's
// error kind and leaves the account untouched.
func (m *MintInitializer) Configure(ext Extension, auth Authorities) error {
	if ext == nil {
		if !m.state.CanTransition(StateExtensionsConfigured) {
			return m.transitionError(ErrorKindMintFailed, "configure")
		}
		m.transition(StateExtensionsConfigured)
		return nil
	}
	if !m.state.CanTransition(StateExtensionsConfigured) {
		return m.transitionError(ext.failureKind(), "configure "+ext.Tag().String())
	}
	if err := m.configurer.Configure(m.host, m.address, ext, auth); err != nil {
		return err
	}
	m.extension = ext
	m.transition(StateExtensionsConfigured)
	return nil
}

// Finalize writes the base mint record. From StateAllocated the empty
// configuration step is taken first.
func (m *MintInitializer) Finalize(
	decimals uint8,
	mintAuthority solana.PublicKey,
	freezeAuthority *solana.PublicKey,
) error {
	if m.state == StateAllocated {
		m.transition(StateExtensionsConfigured)
	}
	if !m.state.CanTransition(StateInitialized) {
		return m.transitionError(ErrorKindMintFailed, "finalize")
	}
	err := m.runtime.InitMint(m.host, m.address, mintAuthority, freezeAuthority, decimals)
	if err != nil {
		return reportError(
			ErrorKindMintFailed,
			"finalize mint",
			err,
			map[string]any{"mint": m.address.String()},
		)
	}
	m.transition(StateInitialized)
	return nil
}

func (m *MintInitializer) transition(next State) {
	m.logger.Debug(
		"mint state transition",
		"component", "launchpad",
		"mint", m.address.String(),
		"from", m.state.String(),
		"to", next.String(),
	)
	m.state = next
}

func (m *MintInitializer) transitionError(kind ErrorKind, op string) error {
	cause := fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, m.state)
	if m.state == StateUnallocated {
		cause = fmt.Errorf("%w: %w", cause, ledger.AccountNotFoundError{Address: m.address})
	}
	return NewError(
		kind,
		fmt.Sprintf("cannot %s mint in state %s", op, m.state),
		map[string]any{
			"mint":  m.address.String(),
			"state": m.state.String(),
		},
		cause,
	)
}
