// Package export writes plugin records to a JSON file whose location is negotiated
// interactively: the directory is resolved once, then the filename is asked for until
// the user picks a free name, agrees to overwrite, or cancels.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/plugins"
)

// DefaultFilename is used when the user submits an empty filename.
const DefaultFilename = "output"

// Messages shown to the user at each terminal or transitional step.
const (
	DirectoryCreatedMessage = "Directory created successfully."
	FileCreatedMessage      = "Output json file created successfully."
	ChooseAnotherMessage    = "Please choose another name"
	CancelledMessage        = "Operation is canceled."
)

// OverwriteChoice is the answer to "this file already exists, overwrite?".
type OverwriteChoice string

const (
	OverwriteCancel OverwriteChoice = "Cancel"
	OverwriteYes    OverwriteChoice = "Yes"
	OverwriteNo     OverwriteChoice = "No"
)

// OverwriteChoices lists the choices in the order they are offered.
var OverwriteChoices = []OverwriteChoice{OverwriteCancel, OverwriteYes, OverwriteNo}

// DefaultOverwriteChoice is preselected when the overwrite question is shown.
const DefaultOverwriteChoice = OverwriteYes

// Prompter asks the user the questions the export flow needs answered.
type Prompter interface {
	AskDirectory() (string, error)
	// ConfirmCreateDirectory should default to yes.
	ConfirmCreateDirectory(directory string) (bool, error)
	AskFilename() (string, error)
	// ChooseOverwrite should default to DefaultOverwriteChoice.
	ChooseOverwrite(path string) (OverwriteChoice, error)
}

// Target is where the export file goes.
type Target struct {
	Directory string
	Filename  string
}

// Path returns {directory}/{filename}.json.
func (t Target) Path() string {
	return strings.TrimSuffix(t.Directory, "/") + "/" + t.Filename + ".json"
}

// Outcome says how an export ended.
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes a finished export. Target is only complete when Outcome is OutcomeWritten.
type Result struct {
	Outcome Outcome
	Target  Target
}

type state int

const (
	askDirectory state = iota
	checkDirectory
	askFilename
	checkFile
	writeFile
	cancelled
)

// Exporter runs the export flow against a filesystem.
type Exporter struct {
	fs       afero.Fs
	prompter Prompter
	logger   *log.Logger
}

// NewExporter creates an Exporter. A nil logger falls back to log.Default().
func NewExporter(fs afero.Fs, prompter Prompter, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{fs: fs, prompter: prompter, logger: logger}
}

// Export walks the prompt states until the file is written or the user cancels.
// Cancellation is a Result, not an error; errors are prompt failures and
// *custom_errors.FilesystemError.
func (e *Exporter) Export(records []plugins.Record) (Result, error) {
	var target Target
	current := askDirectory

	for {
		switch current {
		case askDirectory:
			directory, err := e.prompter.AskDirectory()
			if err != nil {
				return Result{}, fmt.Errorf("failed to read directory: %w", err)
			}
			target.Directory = directory
			current = checkDirectory

		case checkDirectory:
			next, err := e.resolveDirectory(target.Directory)
			if err != nil {
				return Result{}, err
			}
			current = next

		case askFilename:
			filename, err := e.prompter.AskFilename()
			if err != nil {
				return Result{}, fmt.Errorf("failed to read filename: %w", err)
			}
			target.Filename = normalizeFilename(filename)
			current = checkFile

		case checkFile:
			next, err := e.resolveFile(target.Path())
			if err != nil {
				return Result{}, err
			}
			current = next

		case writeFile:
			if err := e.write(target.Path(), records); err != nil {
				return Result{}, err
			}
			e.logger.Info(FileCreatedMessage, "path", target.Path())
			return Result{Outcome: OutcomeWritten, Target: target}, nil

		case cancelled:
			e.logger.Warn(CancelledMessage)
			return Result{Outcome: OutcomeCancelled, Target: target}, nil
		}
	}
}

// resolveDirectory treats any path that cannot be confirmed as a directory as missing.
func (e *Exporter) resolveDirectory(directory string) (state, error) {
	if exists, err := afero.DirExists(e.fs, directory); err == nil && exists {
		return askFilename, nil
	}

	create, err := e.prompter.ConfirmCreateDirectory(directory)
	if err != nil {
		return cancelled, fmt.Errorf("failed to confirm directory creation: %w", err)
	}
	if !create {
		return cancelled, nil
	}

	if err := e.fs.MkdirAll(directory, 0o755); err != nil {
		return cancelled, custom_errors.NewFilesystemError("create directory", directory, err)
	}
	e.logger.Info(DirectoryCreatedMessage, "directory", directory)

	return askFilename, nil
}

func (e *Exporter) resolveFile(path string) (state, error) {
	exists, err := afero.Exists(e.fs, path)
	if err != nil {
		return cancelled, custom_errors.NewFilesystemError("check file", path, err)
	}
	if !exists {
		return writeFile, nil
	}

	choice, err := e.prompter.ChooseOverwrite(path)
	if err != nil {
		return cancelled, fmt.Errorf("failed to read overwrite choice: %w", err)
	}

	switch choice {
	case OverwriteYes:
		return writeFile, nil
	case OverwriteNo:
		e.logger.Warn(ChooseAnotherMessage)
		return askFilename, nil
	case OverwriteCancel:
		return cancelled, nil
	default:
		return cancelled, custom_errors.CreateInvalidArgumentErrorWithMessage(
			fmt.Sprintf("unknown overwrite choice %q", choice),
		)
	}
}

func (e *Exporter) write(path string, records []plugins.Record) error {
	if records == nil {
		records = []plugins.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return custom_errors.NewFilesystemError("write file", path, err)
	}
	return nil
}

// normalizeFilename applies the default name and drops a .json the user typed themselves.
func normalizeFilename(filename string) string {
	filename = strings.TrimSuffix(strings.TrimSpace(filename), ".json")
	if filename == "" {
		return DefaultFilename
	}
	return filename
}
