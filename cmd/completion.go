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
	"strings"

	// external
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/internal/completion"
)

const FILENAME_FLAG = "filename"

// NewCompletionCmd creates the command that prints or saves shell completion scripts.
func NewCompletionCmd(deps Dependencies) *cobra.Command {
	generator := completion.NewGenerator(deps.Fs)
	supportedShells := generator.SupportedShells()

	completionCmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completions",
		Long: fmt.Sprintf(`Generate a completion script for craft-packages.

Supported shells: %s

To load completions:

Bash:
		$ craft-packages completion bash > /etc/bash_completion.d/craft-packages

Zsh:
		$ craft-packages completion zsh > "${fpath[1]}/_craft-packages"

Fish:
		$ craft-packages completion fish > ~/.config/fish/completions/craft-packages.fish

PowerShell:
		PS> craft-packages completion powershell | Out-String | Invoke-Expression
`, strings.Join(supportedShells, ", ")),
		DisableFlagsInUseLine: true,
		ValidArgs:             supportedShells,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return custom_errors.CreateInvalidArgumentErrorWithMessage(
					fmt.Sprintf("requires exactly one shell. Supported shells are: %s", strings.Join(supportedShells, ", ")),
				)
			}
			return cobra.OnlyValidArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := cmd.Flags().GetString(FILENAME_FLAG)
			if err != nil {
				return err
			}

			return generator.GenerateCompletion(cmd, args[0], filename)
		},
	}

	completionCmd.Flags().StringP(FILENAME_FLAG, "f", "", "Write the completion script to a file instead of stdout")

	return completionCmd
}
