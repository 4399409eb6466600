// Copyright 2026 Paysum Users
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dotandev/paysum/internal/names"
	"github.com/dotandev/paysum/internal/summary"
)

// Terminal writes a summary to w with ANSI colors. Destination titles
// are bold cyan, issuer titles cyan, user-set names carry the pencil
// marker. color.NoColor (NO_COLOR, non-TTY) disables styling.
func Terminal(s summary.Summary, w io.Writer) {
	if s.Empty() {
		fmt.Fprintln(w, summary.EmptyMessage)
		return
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	issuerColor := color.New(color.FgCyan)
	dimColor := color.New(color.Faint)

	for i, block := range s.Blocks {
		if i > 0 && !block.JoinPrevious {
			fmt.Fprintln(w)
		}

		titleColor.Fprint(w, terminalTitle(block.Destination))
		dimColor.Fprintf(w, "  (%s)", names.ShortenID(block.Destination.AccountID))
		fmt.Fprintln(w)

		for _, line := range block.Lines {
			if line.Issuer != nil {
				issuerColor.Fprint(w, terminalTitle(*line.Issuer))
				fmt.Fprintf(w, " - %s %s\n", line.Amount, line.AssetCode)
			} else {
				fmt.Fprintf(w, "%s %s\n", line.Amount, line.AssetCode)
			}
		}
	}
}

func terminalTitle(name summary.Name) string {
	if name.Record.UserSet {
		return UserSetMarker + name.Record.Name
	}
	return name.Record.Name
}
