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


// Package cmd provides the command-line interface for craft-packages.
package cmd

import (
	// standard library
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	// external
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/craft-packages/build_info"
	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/env"
	"github.com/louiss0/craft-packages/export"
	"github.com/louiss0/craft-packages/services"
)

// Context keys and flag names shared by the commands
const (
	_GO_ENV         = "go_env"
	_DEBUG_EXECUTOR = "debug_executor"
	_DEBUG_FLAG     = "debug"
)

// ProgressReporter shows how far enrichment has come.
type ProgressReporter interface {
	Advance(done, total int)
	Clear()
}

// Dependencies holds the external dependencies for testing and real execution
type Dependencies struct {
	NewRegistryClient   func(baseURL string) services.RegistryClient
	NewExportPrompter   func() export.Prompter
	NewProgressReporter func(w io.Writer) ProgressReporter
	NewDebugExecutor    func(bool) DebugExecutor
	Fs                  afero.Fs
	// Logger receives user-facing warnings and status messages; nil means log.Default().
	Logger *log.Logger
}

type DebugExecutor interface {
	ExecuteIfDebugIsTrue(cb func())
	LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{})
}

type debugExecutor struct {
	debugFlag bool
}

func newDebugExecutor(debugFlag bool) DebugExecutor {
	return debugExecutor{debugFlag}
}

func (d debugExecutor) ExecuteIfDebugIsTrue(cb func()) {
	if d.debugFlag {
		cb()
	}
}

func (d debugExecutor) LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{}) {
	if d.debugFlag {
		log.Debug(msg, keyvals...)
	}
}

// NewRootCmd creates a new root command with injectable dependencies.
func NewRootCmd(deps Dependencies) *cobra.Command {
	deps.Logger = lo.Ternary(deps.Logger != nil, deps.Logger, log.Default())

	cmd := &cobra.Command{
		Use:     "craft-packages",
		Version: build_info.CLI_VERSION.String(),
		Short:   "Browse Craft CMS plugins published on Packagist",
		Long: `craft-packages lists Craft CMS plugins from Packagist together with their monthly
downloads, dependents, favers, handle and latest listed version.

Available commands:
		packages   - List plugins as a table or save them to a JSON file
		completion - Generate shell completion scripts`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			debug, err := c.Flags().GetBool(_DEBUG_FLAG)
			if err != nil {
				return err
			}

			if debug {
				log.SetLevel(log.DebugLevel)
				deps.Logger.SetLevel(log.DebugLevel)
			}

			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Error(err.Error())
			}

			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			lo.ForEach([][2]any{
				{_GO_ENV, env.NewGoEnv()},
				{_DEBUG_EXECUTOR, deps.NewDebugExecutor(debug)},
			}, func(item [2]any, _ int) {
				ctx = context.WithValue(ctx, item[0], item[1])
			})

			c.SetContext(ctx)
			return nil
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(NewPackagesCmd(deps), NewCompletionCmd(deps))

	cmd.PersistentFlags().BoolP(_DEBUG_FLAG, "d", false, "Make commands run in debug mode")

	return cmd
}

// Global variable for the root command, initialized in init()
var rootCmd *cobra.Command

func init() {
	rootCmd = NewRootCmd(
		Dependencies{
			NewRegistryClient:   services.NewPackagistRegistryService,
			NewExportPrompter:   newExportPrompter,
			NewProgressReporter: newProgressReporter,
			NewDebugExecutor:    newDebugExecutor,
			Fs:                  afero.NewOsFs(),
		},
	)
}

// Execute runs the root command and turns its outcome into an exit code.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(exitCode(rootCmd.ExecuteContext(ctx)))
}

// exitCode maps a command error to a process exit code.
// A cancellation has already been reported to the user, so it is not logged again.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, custom_errors.ErrUserCancelled):
		return 1
	default:
		log.Error(err.Error())
		return 1
	}
}

// Helper functions to retrieve dependencies from the command context.

func getDebugExecutorFromCommandContext(cmd *cobra.Command) DebugExecutor {
	return cmd.Context().Value(_DEBUG_EXECUTOR).(DebugExecutor)
}

func getGoEnvFromCommandContext(cmd *cobra.Command) env.GoEnv {
	return cmd.Context().Value(_GO_ENV).(env.GoEnv)
}
