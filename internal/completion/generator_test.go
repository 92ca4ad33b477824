package completion_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/internal/completion"
)

func TestCompletionGenerator(t *testing.T) {
	RunSpecs(t, "Completion Generator Suite")
}

var _ = Describe("CompletionGenerator", func() {
	var (
		generator completion.Generator
		fs        afero.Fs
		root      *cobra.Command
		child     *cobra.Command
		out       *bytes.Buffer
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		generator = completion.NewGenerator(fs)
		root = &cobra.Command{Use: "craft-packages"}
		child = &cobra.Command{Use: "completion", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(child)
		out = new(bytes.Buffer)
		root.SetOut(out)
	})

	It("should list the supported shells", func() {
		assert.Equal(GinkgoT(), []string{"bash", "fish", "powershell", "zsh"}, generator.SupportedShells())
	})

	DescribeTable("should print a script for the root command",
		func(shell, marker string) {
			require.NoError(GinkgoT(), generator.GenerateCompletion(child, shell, ""))
			assert.Contains(GinkgoT(), out.String(), marker)
			assert.Contains(GinkgoT(), out.String(), "craft-packages")
		},
		Entry("bash", "bash", "bash completion V2 for craft-packages"),
		Entry("zsh", "zsh", "#compdef craft-packages"),
		Entry("fish", "fish", "fish completion for craft-packages"),
		Entry("powershell", "powershell", "powershell completion for craft-packages"),
	)

	It("should write the script to a file when a filename is given", func() {
		require.NoError(GinkgoT(), generator.GenerateCompletion(child, "zsh", "/completions/_craft-packages"))

		content, err := afero.ReadFile(fs, "/completions/_craft-packages")
		require.NoError(GinkgoT(), err)
		assert.Contains(GinkgoT(), string(content), "#compdef craft-packages")
		assert.Empty(GinkgoT(), out.String())
	})

	It("should reject an unsupported shell", func() {
		err := generator.GenerateCompletion(child, "nushell", "")
		assert.ErrorIs(GinkgoT(), err, custom_errors.ErrInvalidArgument)
	})

	It("should report a file that cannot be created", func() {
		readOnly := completion.NewGenerator(afero.NewReadOnlyFs(afero.NewMemMapFs()))
		err := readOnly.GenerateCompletion(child, "bash", "/completions/craft-packages.bash")
		assert.ErrorIs(GinkgoT(), err, custom_errors.ErrFilesystem)
	})
})
