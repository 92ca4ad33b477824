package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/export"
	"github.com/louiss0/craft-packages/mock"
	"github.com/louiss0/craft-packages/plugins"
	"github.com/louiss0/craft-packages/testutil"
)

func TestExport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Export Suite")
}

var _ = Describe("Target", func() {
	It("should join the directory and filename with a .json extension", func() {
		assert.Equal(GinkgoT(), "/exports/output.json", export.Target{Directory: "/exports", Filename: "output"}.Path())
		assert.Equal(GinkgoT(), "/exports/output.json", export.Target{Directory: "/exports/", Filename: "output"}.Path())
	})
})

var _ = Describe("Exporter", func() {
	var (
		assertT   *assert.Assertions
		fs        afero.Fs
		logOutput *bytes.Buffer
		logger    *log.Logger
		records   []plugins.Record
	)

	readRecords := func(path string) []plugins.Record {
		content, err := afero.ReadFile(fs, path)
		Expect(err).NotTo(HaveOccurred())

		var decoded []plugins.Record
		Expect(json.Unmarshal(content, &decoded)).To(Succeed())
		return decoded
	}

	BeforeEach(func() {
		assertT = assert.New(GinkgoT())
		fs = afero.NewMemMapFs()
		logOutput = &bytes.Buffer{}
		logger = log.NewWithOptions(logOutput, log.Options{})

		updated := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
		records = []plugins.Record{
			{Name: "vendor/seo", Description: "SEO", Handle: "seo", Repository: "https://github.com/vendor/seo", Version: "4.0.0", Downloads: 900, Dependents: 4, Favers: 30, Updated: updated},
			{Name: "vendor/forms", Description: "Forms", Handle: "forms", Repository: "https://github.com/vendor/forms", Version: "2.1.0", Downloads: 500, Dependents: 1, Favers: 12, Updated: updated.Add(-time.Hour)},
		}
	})

	Context("when the directory exists and the file does not", func() {
		BeforeEach(func() {
			Expect(fs.MkdirAll("/exports", 0o755)).To(Succeed())
		})

		It("should write the records after asking each question once", func() {
			prompter := mock.NewMockExportPrompter("/exports", "plugins")

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal(export.OutcomeWritten, result.Outcome)
			assertT.Equal("/exports/plugins.json", result.Target.Path())
			assertT.Equal(records, readRecords("/exports/plugins.json"))
			assertT.Contains(logOutput.String(), export.FileCreatedMessage)

			prompter.AssertNumberOfCalls(GinkgoT(), "AskDirectory", 1)
			prompter.AssertNumberOfCalls(GinkgoT(), "AskFilename", 1)
			prompter.AssertNotCalled(GinkgoT(), "ConfirmCreateDirectory", tmock.Anything)
			prompter.AssertNotCalled(GinkgoT(), "ChooseOverwrite", tmock.Anything)
		})

		It("should keep the JSON keys in record order", func() {
			prompter := mock.NewMockExportPrompter("/exports", "plugins")

			_, err := export.NewExporter(fs, prompter, logger).Export(records[:1])
			assertT.NoError(err)

			content, err := afero.ReadFile(fs, "/exports/plugins.json")
			assertT.NoError(err)
			assertT.JSONEq(`[{
				"name": "vendor/seo",
				"description": "SEO",
				"handle": "seo",
				"repository": "https://github.com/vendor/seo",
				"version": "4.0.0",
				"downloads": 900,
				"dependents": 4,
				"favers": 30,
				"updated": "2024-02-03T04:05:06Z"
			}]`, string(content))
			assertT.Regexp(`^\[\{"name":.*"description":.*"handle":.*"repository":.*"version":.*"downloads":.*"dependents":.*"favers":.*"updated":`, string(content))
		})

		It("should default an empty filename to output.json", func() {
			prompter := mock.NewMockExportPrompter("/exports", "")

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal("/exports/output.json", result.Target.Path())
			exists, _ := afero.Exists(fs, "/exports/output.json")
			assertT.True(exists)
		})

		It("should not double the extension when the user types .json", func() {
			prompter := mock.NewMockExportPrompter("/exports", " plugins.json ")

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal("/exports/plugins.json", result.Target.Path())
		})

		It("should write an empty array for no records", func() {
			prompter := mock.NewMockExportPrompter("/exports", "empty")

			_, err := export.NewExporter(fs, prompter, logger).Export(nil)
			assertT.NoError(err)

			content, err := afero.ReadFile(fs, "/exports/empty.json")
			assertT.NoError(err)
			assertT.Equal("[]", string(content))
		})
	})

	Context("when the directory does not exist", func() {
		It("should cancel without touching the filesystem when creation is declined", func() {
			snapshot, err := testutil.SnapshotFs(fs)
			Expect(err).NotTo(HaveOccurred())

			prompter := mock.NewMockExportPrompter("/missing")
			prompter.On("ConfirmCreateDirectory", "/missing").Return(false, nil).Once()

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal(export.OutcomeCancelled, result.Outcome)
			assertT.Contains(logOutput.String(), export.CancelledMessage)
			testutil.AssertFsUnchanged(GinkgoT(), fs, snapshot)
			prompter.AssertNotCalled(GinkgoT(), "AskFilename")
		})

		It("should create the directory when confirmed and then write the file", func() {
			prompter := mock.NewMockExportPrompter("/new/nested", "plugins")
			prompter.On("ConfirmCreateDirectory", "/new/nested").Return(true, nil).Once()

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal(export.OutcomeWritten, result.Outcome)
			isDir, _ := afero.DirExists(fs, "/new/nested")
			assertT.True(isDir)
			assertT.Contains(logOutput.String(), export.DirectoryCreatedMessage)
			assertT.Equal(records, readRecords("/new/nested/plugins.json"))
		})

		It("should return a filesystem error when the directory cannot be created", func() {
			readOnly := afero.NewReadOnlyFs(afero.NewMemMapFs())
			prompter := mock.NewMockExportPrompter("locked")
			prompter.On("ConfirmCreateDirectory", "locked").Return(true, nil).Once()

			_, err := export.NewExporter(readOnly, prompter, logger).Export(records)

			assertT.ErrorIs(err, custom_errors.ErrFilesystem)
			var fsErr *custom_errors.FilesystemError
			assertT.ErrorAs(err, &fsErr)
			assertT.Equal("locked", fsErr.Path)
		})
	})

	Context("when the file already exists", func() {
		const existing = `[{"name":"old"}]`

		BeforeEach(func() {
			Expect(afero.WriteFile(fs, "/exports/output.json", []byte(existing), 0o644)).To(Succeed())
		})

		It("should ask for another name after No and write that one", func() {
			prompter := mock.NewMockExportPrompter("/exports", "output", "output2")
			prompter.On("ChooseOverwrite", "/exports/output.json").Return(export.OverwriteNo, nil).Once()

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal("/exports/output2.json", result.Target.Path())
			assertT.Equal(records, readRecords("/exports/output2.json"))
			assertT.Contains(logOutput.String(), export.ChooseAnotherMessage)

			content, _ := afero.ReadFile(fs, "/exports/output.json")
			assertT.Equal(existing, string(content))

			prompter.AssertNumberOfCalls(GinkgoT(), "AskDirectory", 1)
			prompter.AssertNumberOfCalls(GinkgoT(), "AskFilename", 2)
		})

		It("should overwrite after Yes", func() {
			prompter := mock.NewMockExportPrompter("/exports", "")
			prompter.On("ChooseOverwrite", "/exports/output.json").Return(export.OverwriteYes, nil).Once()

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal(export.OutcomeWritten, result.Outcome)
			assertT.Equal(records, readRecords("/exports/output.json"))
		})

		It("should leave the file alone after Cancel", func() {
			snapshot, err := testutil.SnapshotFs(fs)
			Expect(err).NotTo(HaveOccurred())

			prompter := mock.NewMockExportPrompter("/exports", "output")
			prompter.On("ChooseOverwrite", "/exports/output.json").Return(export.OverwriteCancel, nil).Once()

			result, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.NoError(err)
			assertT.Equal(export.OutcomeCancelled, result.Outcome)
			assertT.Contains(logOutput.String(), export.CancelledMessage)
			testutil.AssertFsUnchanged(GinkgoT(), fs, snapshot)
		})

		It("should reject an unknown overwrite choice", func() {
			prompter := mock.NewMockExportPrompter("/exports", "output")
			prompter.On("ChooseOverwrite", "/exports/output.json").Return(export.OverwriteChoice("Maybe"), nil).Once()

			_, err := export.NewExporter(fs, prompter, logger).Export(records)

			assertT.ErrorIs(err, custom_errors.ErrInvalidArgument)
		})
	})

	It("should return prompt failures", func() {
		abort := errors.New("user aborted")
		prompter := &mock.MockExportPrompter{}
		prompter.On("AskDirectory").Return("", abort).Once()

		_, err := export.NewExporter(fs, prompter, logger).Export(records)

		assertT.ErrorIs(err, abort)
	})

	It("should fall back to the default logger", func() {
		assertT.NotPanics(func() {
			export.NewExporter(fs, &mock.MockExportPrompter{}, nil)
		})
	})
})

var _ = Describe("Outcome", func() {
	It("should describe itself", func() {
		assert.Equal(GinkgoT(), "written", export.OutcomeWritten.String())
		assert.Equal(GinkgoT(), "cancelled", export.OutcomeCancelled.String())
		assert.Equal(GinkgoT(), "Outcome(7)", export.Outcome(7).String())
	})
})
