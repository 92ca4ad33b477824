// Package mock provides testify/mock implementations of the CLI's collaborators.
package mock

import (
	// standard library
	"context"

	// internal
	"github.com/louiss0/craft-packages/export"
	"github.com/louiss0/craft-packages/services"

	// external
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
)

// MockDebugExecutor implements the cmd.DebugExecutor interface for testing purposes
type MockDebugExecutor struct {
	mock.Mock
}

// ExecuteIfDebugIsTrue records the call to this method.
func (m *MockDebugExecutor) ExecuteIfDebugIsTrue(cb func()) {
	m.Called(cb)
}

// LogDebugMessageIfDebugIsTrue records the call to this method along with its arguments.
// Set expectations with `On("LogDebugMessageIfDebugIsTrue", msg, keyvals...)`.
func (m *MockDebugExecutor) LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{}) {
	args := []interface{}{msg}
	args = append(args, keyvals...)
	m.Called(args...)
}

// MockRegistryClient implements services.RegistryClient.
// No HTTP request leaves the test process.
type MockRegistryClient struct {
	mock.Mock
}

// SearchByType records the search and returns the configured summaries
func (m *MockRegistryClient) SearchByType(ctx context.Context, packageType string, limit int) ([]services.PackageSummary, error) {
	args := m.Called(ctx, packageType, limit)
	summaries, _ := args.Get(0).([]services.PackageSummary)
	return summaries, args.Error(1)
}

// GetPackageDetails records the lookup and returns the configured details
func (m *MockRegistryClient) GetPackageDetails(ctx context.Context, name string) (services.PackageDetails, error) {
	args := m.Called(ctx, name)
	details, _ := args.Get(0).(services.PackageDetails)
	return details, args.Error(1)
}

// NewMockRegistryClient creates a MockRegistryClient that answers a search of any type with
// summaries and every detail lookup with the matching entry of details.
func NewMockRegistryClient(summaries []services.PackageSummary, details map[string]services.PackageDetails) *MockRegistryClient {
	client := &MockRegistryClient{}

	client.On("SearchByType", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("int")).
		Return(summaries, nil).Maybe()

	lo.ForEach(lo.Keys(details), func(name string, _ int) {
		client.On("GetPackageDetails", mock.Anything, name).Return(details[name], nil).Maybe()
	})

	return client
}

// MockExportPrompter implements export.Prompter using testify/mock
type MockExportPrompter struct {
	mock.Mock
}

// AskDirectory returns the next configured directory answer
func (p *MockExportPrompter) AskDirectory() (string, error) {
	args := p.Called()
	return args.String(0), args.Error(1)
}

// ConfirmCreateDirectory returns the next configured confirmation
func (p *MockExportPrompter) ConfirmCreateDirectory(directory string) (bool, error) {
	args := p.Called(directory)
	return args.Bool(0), args.Error(1)
}

// AskFilename returns the next configured filename answer
func (p *MockExportPrompter) AskFilename() (string, error) {
	args := p.Called()
	return args.String(0), args.Error(1)
}

// ChooseOverwrite returns the next configured overwrite choice
func (p *MockExportPrompter) ChooseOverwrite(path string) (export.OverwriteChoice, error) {
	args := p.Called(path)
	choice, _ := args.Get(0).(export.OverwriteChoice)
	return choice, args.Error(1)
}

// NewMockExportPrompter creates a prompter that answers the directory question with directory
// and each filename question with the next entry of filenames.
func NewMockExportPrompter(directory string, filenames ...string) *MockExportPrompter {
	prompter := &MockExportPrompter{}
	prompter.On("AskDirectory").Return(directory, nil).Once()

	lo.ForEach(filenames, func(filename string, _ int) {
		prompter.On("AskFilename").Return(filename, nil).Once()
	})

	return prompter
}

// MockProgressReporter records every progress update it is given
type MockProgressReporter struct {
	mock.Mock
}

// NewMockProgressReporter creates a reporter that accepts any number of updates
func NewMockProgressReporter() *MockProgressReporter {
	reporter := &MockProgressReporter{}
	reporter.On("Advance", mock.AnythingOfType("int"), mock.AnythingOfType("int")).Return().Maybe()
	reporter.On("Clear").Return().Maybe()
	return reporter
}

// Advance records the update
func (r *MockProgressReporter) Advance(done, total int) {
	r.Called(done, total)
}

// Clear records that the bar was removed
func (r *MockProgressReporter) Clear() {
	r.Called()
}
