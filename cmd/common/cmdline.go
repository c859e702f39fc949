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

package common

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blinklabs-io/mint-launchpad/ledger"
)

type GlobalFlags struct {
	Flagset   *flag.FlagSet
	StatePath string
	Debug     bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.StatePath,
		"state",
		"ledger.cbor",
		"path to the ledger snapshot, created on first use",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
}

// Logger returns a text logger on stderr at the level chosen by -debug
func (f *GlobalFlags) Logger() *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}

// OpenLedger restores the ledger snapshot at -state. When none exists yet a
// new ledger with rent is returned and created is true.
func (f *GlobalFlags) OpenLedger(rent ledger.Rent) (l *ledger.Ledger, created bool, err error) {
	data, err := os.ReadFile(f.StatePath)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.New(ledger.WithRent(rent)), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	l, err = ledger.Restore(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", f.StatePath, err)
	}
	return l, false, nil
}

// SaveLedger writes the ledger snapshot to -state
func (f *GlobalFlags) SaveLedger(l *ledger.Ledger) error {
	data, err := l.Snapshot()
	if err != nil {
		return err
	}
	return os.WriteFile(f.StatePath, data, 0o600)
}

// Fatal prints the error and exits
func Fatal(format string, args ...any) {
	fmt.Printf("ERROR: "+format+"\n", args...)
	os.Exit(1)
}

// Context returns a context canceled on interrupt
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
