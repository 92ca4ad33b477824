// Package testutil builds root commands wired to mocks and generates plugin fixtures.
package testutil

import (
	// standard library
	"bytes"
	"fmt"
	"io"
	"time"

	// external
	"github.com/brianvoe/gofakeit"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	tmock "github.com/stretchr/testify/mock"

	// internal
	"github.com/louiss0/craft-packages/cmd"
	"github.com/louiss0/craft-packages/export"
	"github.com/louiss0/craft-packages/mock"
	"github.com/louiss0/craft-packages/services"
)

// RootCommandFactory is a helper struct for creating cobra.Command instances
// with mocked dependencies for testing purposes.
type RootCommandFactory struct {
	registry         *mock.MockRegistryClient
	prompter         *mock.MockExportPrompter
	progressReporter *mock.MockProgressReporter
	debugExecutor    *mock.MockDebugExecutor
	fs               afero.Fs
	logOutput        *bytes.Buffer

	registryURLs []string
}

// NewRootCommandFactory creates a new RootCommandFactory around the given registry mock.
// The filesystem starts empty and every prompt answer has to be configured with UsePrompter.
func NewRootCommandFactory(registry *mock.MockRegistryClient) *RootCommandFactory {
	debugExecutor := &mock.MockDebugExecutor{}
	debugExecutor.On("LogDebugMessageIfDebugIsTrue", tmock.Anything).Return().Maybe()
	debugExecutor.On("LogDebugMessageIfDebugIsTrue", tmock.Anything, tmock.Anything, tmock.Anything).Return().Maybe()
	debugExecutor.On("LogDebugMessageIfDebugIsTrue", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything).Return().Maybe()

	return &RootCommandFactory{
		registry:         registry,
		prompter:         &mock.MockExportPrompter{},
		progressReporter: mock.NewMockProgressReporter(),
		debugExecutor:    debugExecutor,
		fs:               afero.NewMemMapFs(),
		logOutput:        &bytes.Buffer{},
	}
}

func (f *RootCommandFactory) Registry() *mock.MockRegistryClient {
	return f.registry
}

func (f *RootCommandFactory) Prompter() *mock.MockExportPrompter {
	return f.prompter
}

func (f *RootCommandFactory) ProgressReporter() *mock.MockProgressReporter {
	return f.progressReporter
}

func (f *RootCommandFactory) DebugExecutor() *mock.MockDebugExecutor {
	return f.debugExecutor
}

func (f *RootCommandFactory) Fs() afero.Fs {
	return f.fs
}

// LogOutput returns everything the command logged for the user so far.
func (f *RootCommandFactory) LogOutput() string {
	return f.logOutput.String()
}

// RegistryURLs returns the base URL of every registry client the command asked for.
func (f *RootCommandFactory) RegistryURLs() []string {
	return f.registryURLs
}

// UsePrompter replaces the prompter handed to the export flow.
func (f *RootCommandFactory) UsePrompter(prompter *mock.MockExportPrompter) {
	f.prompter = prompter
}

// UseFs replaces the filesystem handed to the export flow.
func (f *RootCommandFactory) UseFs(fs afero.Fs) {
	f.fs = fs
}

// baseDependencies returns the mocked dependencies every root command is built from.
func (f *RootCommandFactory) baseDependencies() cmd.Dependencies {
	return cmd.Dependencies{
		NewRegistryClient: func(baseURL string) services.RegistryClient {
			f.registryURLs = append(f.registryURLs, baseURL)
			return f.registry
		},
		NewExportPrompter: func() export.Prompter {
			return f.prompter
		},
		NewProgressReporter: func(io.Writer) cmd.ProgressReporter {
			return f.progressReporter
		},
		NewDebugExecutor: func(bool) cmd.DebugExecutor {
			return f.debugExecutor
		},
		Fs:     f.fs,
		Logger: log.NewWithOptions(f.logOutput, log.Options{Level: log.DebugLevel}),
	}
}

// CreateRootCmd creates a root command wired to the factory's mocks.
func (f *RootCommandFactory) CreateRootCmd() *cobra.Command {
	return cmd.NewRootCmd(f.baseDependencies())
}

// FakeSummaries generates count search results with unique names.
func FakeSummaries(count int) []services.PackageSummary {
	return lo.Times(count, func(i int) services.PackageSummary {
		vendor := gofakeit.Username()
		name := fmt.Sprintf("%s/%s-%d", vendor, gofakeit.HipsterWord(), i)
		return services.PackageSummary{
			Name:        name,
			Description: gofakeit.HipsterSentence(8),
			URL:         "https://packagist.org/packages/" + name,
			Repository:  "https://github.com/" + name,
			Downloads:   gofakeit.Number(0, 1_000_000),
			Favers:      gofakeit.Number(0, 5_000),
		}
	})
}

// FakeDetails generates details for every summary, each with a single listed version.
func FakeDetails(summaries []services.PackageSummary) map[string]services.PackageDetails {
	return lo.SliceToMap(summaries, func(summary services.PackageSummary) (string, services.PackageDetails) {
		version := fmt.Sprintf("%d.%d.%d", gofakeit.Number(1, 5), gofakeit.Number(0, 20), gofakeit.Number(0, 20))
		return summary.Name, services.PackageDetails{
			Name:             summary.Name,
			Dependents:       gofakeit.Number(0, 500),
			MonthlyDownloads: gofakeit.Number(0, 100_000),
			Versions: []services.VersionDetails{
				{
					Key:     version,
					Version: version,
					Time:    gofakeit.DateRange(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).UTC().Truncate(time.Second),
					Handle:  gofakeit.HipsterWord(),
				},
			},
		}
	})
}
