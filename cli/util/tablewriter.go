/*
Adapted from https://github.com/foxglove/foxglove-cli/blob/main/foxglove/util/tablewriter/tablewriter.go

MIT License

Copyright (c) Foxglove Technologies Inc

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package util

import (
	"fmt"
	"io"
	"strings"
)

func computeCellWidths(headers []string, data [][]string) []int {
	cellWidths := make([]int, len(headers))
	for i, header := range headers {
		cellWidths[i] = len(header) + 4 // pad two spaces each side
	}
	for _, row := range data {
		for i, column := range row {
			columnWidth := len(column) + 2 // pad one space per side
			if cellWidths[i] < columnWidth {
				cellWidths[i] = columnWidth
			}
		}
	}

	// size the cells so the headers can be center-spaced
	for i, header := range headers {
		if (cellWidths[i]-len(header))%2 == 1 {
			cellWidths[i]++
		}
	}
	return cellWidths
}

/*
PrintTable outputs a table of records formatted like this:
|  Query  |     Status     |  Node  |
|---------|----------------|--------|
| q1      | IdentityFound  | 3      |
| q2      | Unclassifiable | 0      |
*/
func PrintTable(w io.Writer, headers []string, data [][]string) {
	cellWidths := computeCellWidths(headers, data)

	fmt.Fprintf(w, "|")
	for i, header := range headers {
		padding := (cellWidths[i] - len(header)) / 2
		fmt.Fprintf(w, "%s%s%s|", strings.Repeat(" ", padding), header, strings.Repeat(" ", padding))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "|")
	for _, width := range cellWidths {
		fmt.Fprint(w, strings.Repeat("-", width))
		fmt.Fprintf(w, "|")
	}
	fmt.Fprintln(w)

	for _, row := range data {
		fmt.Fprint(w, "|")
		for i, col := range row {
			fmt.Fprintf(w, " %s%s|", col, strings.Repeat(" ", cellWidths[i]-len(col)-1))
		}
		fmt.Fprintln(w)
	}
}
