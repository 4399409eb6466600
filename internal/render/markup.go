// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render turns a payment summary's node tree into output:
// markup for the browser presentation layer, ANSI text for the
// terminal, and a plain-text clipboard derivation.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/dotandev/paysum/internal/summary"
)

// UserSetMarker prefixes display names the user entered themselves.
const UserSetMarker = "✎ " // ✎

// DeleteMarker is the delete affordance appended to user-set names.
const DeleteMarker = "×" // ×

// LineBreak is the markup line-break marker.
const LineBreak = "<br>"

// Markup renders a summary as a markup string for the presentation
// layer. Editable titles carry their account ID in a data attribute so
// the presentation layer can bind edit and delete handlers to nodes by
// identity rather than to generated handler strings.
func Markup(s summary.Summary) string {
	if s.Empty() {
		return summary.EmptyMessage
	}

	var b strings.Builder

	for i, block := range s.Blocks {
		if i > 0 && !block.JoinPrevious {
			b.WriteString(LineBreak)
		}

		writeEditableTitle(&b, block.Destination)
		b.WriteString(LineBreak)

		for _, line := range block.Lines {
			if line.Issuer != nil {
				writeEditableTitle(&b, *line.Issuer)
				fmt.Fprintf(&b, " - %s %s", line.Amount, line.AssetCode)
			} else {
				fmt.Fprintf(&b, "%s %s", line.Amount, line.AssetCode)
			}
			b.WriteString(LineBreak)
		}
	}

	return b.String()
}

func writeEditableTitle(b *strings.Builder, name summary.Name) {
	marker := ""
	if name.Record.UserSet {
		marker = UserSetMarker
	}

	fmt.Fprintf(b, `<span class="editable-name" data-account=%q>%s%s</span>`,
		name.AccountID, marker, html.EscapeString(name.Record.Name))

	if name.Record.UserSet {
		fmt.Fprintf(b, `<span class="delete-name" data-account=%q>%s</span>`,
			name.AccountID, DeleteMarker)
	}
}

var (
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	deleteSpanRe = regexp.MustCompile(`<span class="delete-name"[^>]*>` + DeleteMarker + `</span>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	blankRunRe   = regexp.MustCompile(`\n\n+`)
)

// Plain derives the clipboard text from rendered markup: line-break
// markers become newlines, edit and delete markers and all remaining
// markup are stripped, and runs of blank lines collapse to one.
func Plain(markup string) string {
	text := lineBreakRe.ReplaceAllString(markup, "\n")
	text = strings.ReplaceAll(text, UserSetMarker, "")
	text = deleteSpanRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// PlainText renders a summary straight to clipboard text.
func PlainText(s summary.Summary) string {
	return Plain(Markup(s))
}
