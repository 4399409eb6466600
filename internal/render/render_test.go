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

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dotandev/paysum/internal/names"
	"github.com/dotandev/paysum/internal/summary"
	"github.com/stretchr/testify/assert"
)

func sampleSummary() summary.Summary {
	return summary.Summary{
		Blocks: []summary.Block{
			{
				Destination: summary.Name{
					AccountID: "GD1",
					Record:    names.Record{Name: "Alice", UserSet: true},
				},
				Lines: []summary.Line{
					{Amount: "10.5", AssetCode: "XLM"},
					{
						Issuer: &summary.Name{
							AccountID: "GISS",
							Record:    names.Record{Name: "Dollar Inc"},
						},
						Amount:    "3",
						AssetCode: "USDC",
					},
				},
			},
			{
				Destination: summary.Name{
					AccountID: "GD2",
					Record:    names.Record{Name: "Bob"},
				},
				Lines: []summary.Line{
					{Amount: "7", AssetCode: "XLM"},
				},
			},
		},
	}
}

func TestMarkup(t *testing.T) {
	markup := Markup(sampleSummary())

	// Destination titles carry data attributes for node-identity binding
	assert.Contains(t, markup, `data-account="GD1"`)
	assert.Contains(t, markup, `data-account="GD2"`)
	assert.Contains(t, markup, `data-account="GISS"`)

	// User-set names get a pencil marker and a delete affordance
	assert.Contains(t, markup, UserSetMarker+"Alice")
	assert.Contains(t, markup, `class="delete-name"`)

	// Auto-resolved names get neither
	assert.NotContains(t, markup, UserSetMarker+"Bob")
	assert.Equal(t, 1, strings.Count(markup, `class="delete-name"`))

	// Payment lines
	assert.Contains(t, markup, "10.5 XLM")
	assert.Contains(t, markup, "Dollar Inc</span> - 3 USDC")

	// Blocks are separated by a blank line (double break)
	assert.Contains(t, markup, LineBreak+LineBreak)
}

func TestMarkupEmpty(t *testing.T) {
	assert.Equal(t, summary.EmptyMessage, Markup(summary.Summary{}))
}

func TestMarkupEscapesNames(t *testing.T) {
	s := summary.Summary{
		Blocks: []summary.Block{
			{
				Destination: summary.Name{
					AccountID: "GD1",
					Record:    names.Record{Name: "<script>alert(1)</script>"},
				},
			},
		},
	}

	markup := Markup(s)
	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
}

func TestPlainStripsMarkup(t *testing.T) {
	plain := PlainText(sampleSummary())

	want := strings.Join([]string{
		"Alice",
		"10.5 XLM",
		"Dollar Inc - 3 USDC",
		"",
		"Bob",
		"7 XLM",
	}, "\n")

	assert.Equal(t, want, plain)
	assert.NotContains(t, plain, UserSetMarker)
	assert.NotContains(t, plain, DeleteMarker)
	assert.NotContains(t, plain, "<")
}

func TestPlainCollapsesBlankRuns(t *testing.T) {
	markup := "a<br><br><br><br>b"
	assert.Equal(t, "a\n\nb", Plain(markup))
}

func TestPlainJoinedBlocksShareNoSeparator(t *testing.T) {
	s := sampleSummary()
	s.Blocks[1].JoinPrevious = true

	plain := PlainText(s)
	assert.NotContains(t, plain, "\n\n")
}

func TestTerminalOutput(t *testing.T) {
	var buf bytes.Buffer
	Terminal(sampleSummary(), &buf)

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "10.5 XLM")
	assert.Contains(t, out, "Dollar Inc")
	assert.Contains(t, out, "Bob")
}

func TestTerminalEmpty(t *testing.T) {
	var buf bytes.Buffer
	Terminal(summary.Summary{}, &buf)
	assert.Equal(t, summary.EmptyMessage+"\n", buf.String())
}
