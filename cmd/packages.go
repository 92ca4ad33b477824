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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	// external
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/custom_flags"
	"github.com/louiss0/craft-packages/export"
	"github.com/louiss0/craft-packages/plugins"
	"github.com/louiss0/craft-packages/services"
)

const (
	LIMIT_FLAG        = "limit"
	ORDER_BY_FLAG     = "orderBy"
	ASC_FLAG          = "ASC"
	OUTPUT_FLAG       = "output"
	TYPE_FLAG         = "type"
	REGISTRY_URL_FLAG = "registry-url"

	// REGISTRY_URL_ENV replaces the default registry when --registry-url is not given.
	REGISTRY_URL_ENV = "CRAFT_PACKAGES_REGISTRY_URL"

	DEFAULT_LIMIT = 50
	MAX_LIMIT     = 500
)

// packagesOptions is everything the packages command needs from its flags.
type packagesOptions struct {
	Limit       int    `validate:"min=1,max=500"`
	OrderBy     string `validate:"oneof=downloads favers dependents updated"`
	PackageType string `validate:"required"`
	RegistryURL string `validate:"required,url"`
	Ascending   bool
	Output      bool
}

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

// validateOptions returns a custom_errors.ErrValidation error for a bad orderBy value,
// which the command reports as a warning, and an ErrInvalidFlag error for anything else.
func validateOptions(opts packagesOptions) error {
	err := optionsValidator.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fatal, soft := lo.FilterReject(fieldErrors, func(fe validator.FieldError, _ int) bool {
		return fe.Field() != "OrderBy"
	})

	if len(fatal) > 0 {
		fe := fatal[0]
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(flagNameForField(fe.Field())),
			fmt.Sprintf("failed the %q check with value %v", fe.Tag(), fe.Value()),
		)
	}

	return custom_errors.CreateValidationErrorWithMessage(
		fmt.Sprintf("%s %q is not one of %v", ORDER_BY_FLAG, soft[0].Value(), plugins.SortFields),
	)
}

func flagNameForField(field string) string {
	switch field {
	case "Limit":
		return LIMIT_FLAG
	case "PackageType":
		return TYPE_FLAG
	case "RegistryURL":
		return "registryURL"
	default:
		return strings.ToLower(field)
	}
}

// NewPackagesCmd creates the command that lists, sorts and exports registry plugins.
func NewPackagesCmd(deps Dependencies) *cobra.Command {
	limitFlag := custom_flags.NewRangeFlag(LIMIT_FLAG, 1, MAX_LIMIT, DEFAULT_LIMIT)
	orderByFlag := custom_flags.NewUnionFlag(plugins.SortFields, ORDER_BY_FLAG, plugins.FieldDownloads)

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Display all Craft CMS plugins",
		Long: `Search Packagist for Craft CMS plugins, look up the details of each one and show
them as a table sorted by downloads, favers, dependents or last update.

With --output the list is saved as a JSON array instead. You will be asked for a directory
(created if it does not exist) and a file name (defaults to output.json).

Examples:
  craft-packages packages                          # Top 50 plugins by monthly downloads
  craft-packages packages --limit=10 --orderBy=updated
  craft-packages packages --orderBy=favers --ASC   # Least favoured first
  craft-packages packages --output                 # Save the list to a JSON file`,
		Aliases: []string{"p"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ascending, err := cmd.Flags().GetBool(ASC_FLAG)
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetBool(OUTPUT_FLAG)
			if err != nil {
				return err
			}
			packageType, err := cmd.Flags().GetString(TYPE_FLAG)
			if err != nil {
				return err
			}
			registryURL, err := cmd.Flags().GetString(REGISTRY_URL_FLAG)
			if err != nil {
				return err
			}
			if value, ok := os.LookupEnv(REGISTRY_URL_ENV); ok && value != "" && !cmd.Flags().Changed(REGISTRY_URL_FLAG) {
				registryURL = value
			}

			opts := packagesOptions{
				Limit:       limitFlag.Value(),
				OrderBy:     orderByFlag.String(),
				PackageType: packageType,
				RegistryURL: registryURL,
				Ascending:   ascending,
				Output:      output,
			}

			if err := validateOptions(opts); err != nil {
				if errors.Is(err, custom_errors.ErrValidation) {
					deps.Logger.Warn(fmt.Sprintf(
						"You can only orderBy these columns: (%s)",
						strings.Join(plugins.SortFields, ", "),
					))
					return nil
				}
				return err
			}

			records, err := fetchRecords(cmd, deps, opts)
			if err != nil {
				return err
			}

			sorted := plugins.Sort(records, opts.OrderBy, opts.Ascending)

			if !opts.Output {
				return renderPackagesTable(cmd.OutOrStdout(), sorted, time.Now())
			}

			result, err := export.NewExporter(deps.Fs, deps.NewExportPrompter(), deps.Logger).Export(sorted)
			if err != nil {
				return err
			}
			if result.Outcome == export.OutcomeCancelled {
				return custom_errors.ErrUserCancelled
			}
			return nil
		},
	}

	cmd.Flags().Var(limitFlag, LIMIT_FLAG, fmt.Sprintf("The number of packages you want to show (1-%d)", MAX_LIMIT))
	cmd.Flags().Var(orderByFlag, ORDER_BY_FLAG, fmt.Sprintf("You can order by these fields: %s", strings.Join(plugins.SortFields, ", ")))
	cmd.Flags().Bool(ASC_FLAG, false, "ASC order (if you don't specify, it defaults to DESC)")
	cmd.Flags().Bool(OUTPUT_FLAG, false, "Save the list to a JSON file chosen interactively")
	cmd.Flags().String(TYPE_FLAG, services.CraftPluginType, "The Composer package type to search for")
	cmd.Flags().String(REGISTRY_URL_FLAG, services.DefaultBaseURL, fmt.Sprintf("Base URL of the Packagist compatible registry (or set %s)", REGISTRY_URL_ENV))

	_ = cmd.RegisterFlagCompletionFunc(
		ORDER_BY_FLAG,
		cobra.FixedCompletions(orderByFlag.AllowedValues(), cobra.ShellCompDirectiveNoFileComp),
	)

	return cmd
}

// fetchRecords searches the registry and enriches every result, one package at a time.
func fetchRecords(cmd *cobra.Command, deps Dependencies, opts packagesOptions) ([]plugins.Record, error) {
	ctx := cmd.Context()
	de := getDebugExecutorFromCommandContext(cmd)
	goEnv := getGoEnvFromCommandContext(cmd)
	client := deps.NewRegistryClient(opts.RegistryURL)

	de.LogDebugMessageIfDebugIsTrue("Searching registry", "type", opts.PackageType, "limit", opts.Limit)

	summaries, err := client.SearchByType(ctx, opts.PackageType, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search packages: %w", err)
	}

	goEnv.ExecuteIfModeIsProduction(func() {
		log.Info("Fetching package details", "packages", len(summaries))
	})

	reporter := deps.NewProgressReporter(cmd.ErrOrStderr())
	defer reporter.Clear()

	enricher := plugins.NewEnricher(client, func(done, total int) {
		de.LogDebugMessageIfDebugIsTrue("Package enriched", "done", done, "total", total)
		reporter.Advance(done, total)
	})

	return enricher.Enrich(ctx, summaries)
}
