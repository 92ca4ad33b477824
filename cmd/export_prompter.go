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
	// external
	"github.com/charmbracelet/huh"
	"github.com/samber/lo"

	// internal
	"github.com/louiss0/craft-packages/export"
)

// huhExportPrompter asks the export questions in the terminal.
type huhExportPrompter struct{}

func newExportPrompter() export.Prompter {
	return huhExportPrompter{}
}

func (huhExportPrompter) AskDirectory() (string, error) {
	var directory string
	err := huh.NewInput().
		Title("Enter directory path where do you want to save your file").
		Value(&directory).
		Run()
	return directory, err
}

func (huhExportPrompter) ConfirmCreateDirectory(directory string) (bool, error) {
	create := true
	err := huh.NewConfirm().
		Title("This directory does not exist, do you want to create this directory?").
		Description(directory).
		Affirmative("Yes").
		Negative("No").
		Value(&create).
		Run()
	return create, err
}

func (huhExportPrompter) AskFilename() (string, error) {
	var filename string
	err := huh.NewInput().
		Title("Enter the name for your file: (Defaults to output.json)").
		Placeholder(export.DefaultFilename).
		Value(&filename).
		Run()
	return filename, err
}

func (huhExportPrompter) ChooseOverwrite(path string) (export.OverwriteChoice, error) {
	choice := export.DefaultOverwriteChoice

	options := lo.Map(export.OverwriteChoices, func(c export.OverwriteChoice, _ int) huh.Option[export.OverwriteChoice] {
		return huh.NewOption(string(c), c)
	})

	err := huh.NewSelect[export.OverwriteChoice]().
		Title("This file with the same name already exists, do you want to overwrite").
		Description(path).
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}
