// Package completion writes shell completion scripts for the CLI's command tree.
package completion

import (
	// standard library
	"errors"
	"fmt"
	"io"

	// external
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/craft-packages/custom_errors"
)

// Generator produces completion scripts for the supported shells.
type Generator interface {
	// GenerateCompletion writes the script for shell to filename, or to the command's output when
	// filename is empty. The script always covers the whole tree rooted at cmd.Root().
	GenerateCompletion(cmd *cobra.Command, shell string, filename string) error

	// SupportedShells returns the shells a script can be generated for.
	SupportedShells() []string
}

type generator struct {
	fs afero.Fs
}

// NewGenerator creates a Generator that writes script files to fs.
func NewGenerator(fs afero.Fs) Generator {
	return &generator{fs: fs}
}

var scriptWriters = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func (g *generator) SupportedShells() []string {
	return []string{"bash", "fish", "powershell", "zsh"}
}

func (g *generator) GenerateCompletion(cmd *cobra.Command, shell string, filename string) (err error) {
	writeScript, ok := scriptWriters[shell]
	if !ok || !lo.Contains(g.SupportedShells(), shell) {
		return custom_errors.CreateInvalidArgumentErrorWithMessage(fmt.Sprintf("unsupported shell: %s", shell))
	}

	if filename == "" {
		return writeScript(cmd.Root(), cmd.OutOrStdout())
	}

	file, err := g.fs.Create(filename)
	if err != nil {
		return custom_errors.NewFilesystemError("create completion file", filename, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.Join(err, custom_errors.NewFilesystemError("close completion file", filename, cerr))
		}
	}()

	if err := writeScript(cmd.Root(), file); err != nil {
		return fmt.Errorf("failed to write %s completion: %w", shell, err)
	}
	return nil
}
