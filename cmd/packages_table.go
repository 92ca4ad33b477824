/*
Copyright © 2025 Shelton Louis

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/


package cmd

import (
	// standard library
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	// external
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	// internal
	"github.com/louiss0/craft-packages/plugins"
)

// DESCRIPTION_LIMIT is how many runes of a description fit in the table.
const DESCRIPTION_LIMIT = 25

var packagesTableHeaders = []string{
	"name", "description", "handle", "repository", "version",
	"downloads", "dependents", "favers", "updated",
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// truncateDescription keeps the first DESCRIPTION_LIMIT runes, drops trailing spaces and adds "...".
func truncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= DESCRIPTION_LIMIT {
		return description
	}
	return strings.TrimRight(string(runes[:DESCRIPTION_LIMIT]), " ") + "..."
}

func packageRow(record plugins.Record, now time.Time) []string {
	return []string{
		record.Name,
		truncateDescription(record.Description),
		record.Handle,
		record.Repository,
		record.Version,
		strconv.Itoa(record.Downloads),
		strconv.Itoa(record.Dependents),
		strconv.Itoa(record.Favers),
		lo.Ternary(record.Updated.IsZero(), "", humanize.RelTime(record.Updated, now, "ago", "from now")),
	}
}

// renderPackagesTable writes records as a table, times shown relative to now.
func renderPackagesTable(w io.Writer, records []plugins.Record, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No packages found")
		return err
	}

	packagesTable := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(packagesTableHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	lo.ForEach(records, func(record plugins.Record, _ int) {
		packagesTable.Row(packageRow(record, now)...)
	})

	_, err := fmt.Fprintln(w, packagesTable.Render())
	return err
}
