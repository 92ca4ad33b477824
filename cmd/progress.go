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

	// external
	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

type fileDescriptor interface {
	Fd() uintptr
}

// barProgressReporter draws a single line progress bar that is redrawn in place.
type barProgressReporter struct {
	w   io.Writer
	bar progress.Model
}

// silentProgressReporter is used when the output is not a terminal.
type silentProgressReporter struct{}

func (silentProgressReporter) Advance(int, int) {}
func (silentProgressReporter) Clear()           {}

// newProgressReporter only draws a bar when w is a terminal, so piped output stays clean.
func newProgressReporter(w io.Writer) ProgressReporter {
	f, ok := w.(fileDescriptor)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return silentProgressReporter{}
	}

	return &barProgressReporter{w: w, bar: newProgressBar()}
}

func newProgressBar() progress.Model {
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
}

func (p *barProgressReporter) Advance(done, total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s %d/%d", p.bar.ViewAs(float64(done)/float64(total)), done, total)
}

func (p *barProgressReporter) Clear() {
	fmt.Fprint(p.w, "\r\033[2K")
}
