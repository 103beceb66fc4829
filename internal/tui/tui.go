// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui holds the terminal prompts passgate shows outside the
// line-oriented shell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/passgate/internal/logger"
)

// ErrUserQuit is returned when the prompt is abandoned with ctrl+c or q.
var ErrUserQuit = errors.New("user quit")

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	in     io.Reader
	out    io.Writer
	logger *logger.Logger
}

// NewConfirmer creates a Confirmer bound to in and out. Nil streams select
// the process's stdin and stdout.
func NewConfirmer(in io.Reader, out io.Writer, log *logger.Logger) *Confirmer {
	return &Confirmer{in: in, out: out, logger: log}
}

// Confirm shows prompt and blocks until it is answered. The default answer
// is no.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.in != nil {
		opts = append(opts, tea.WithInput(c.in))
	}
	if c.out != nil {
		opts = append(opts, tea.WithOutput(c.out))
	}

	final, err := tea.NewProgram(newConfirmModel(prompt), opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		c.logger.Err(err).Str("func", "Confirmer.Confirm").Msg("error running confirmation prompt")
		return false, fmt.Errorf("run prompt: %w", err)
	}

	result, ok := final.(confirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.quit {
		return false, ErrUserQuit
	}
	return result.yes && result.answered, nil
}
