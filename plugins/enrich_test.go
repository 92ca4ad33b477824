package plugins_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/mock"
	"github.com/louiss0/craft-packages/plugins"
	"github.com/louiss0/craft-packages/services"
	"github.com/louiss0/craft-packages/testutil"
)

var _ = Describe("Enricher", func() {
	var (
		assertT *assert.Assertions
		ctx     context.Context
	)

	BeforeEach(func() {
		assertT = assert.New(GinkgoT())
		ctx = context.Background()
	})

	It("should return one record per summary in input order", func() {
		summaries := testutil.FakeSummaries(5)
		client := mock.NewMockRegistryClient(summaries, testutil.FakeDetails(summaries))

		records, err := plugins.NewEnricher(client, nil).Enrich(ctx, summaries)

		assertT.NoError(err)
		assertT.Len(records, len(summaries))
		for i, record := range records {
			assertT.Equal(summaries[i].Name, record.Name)
		}
	})

	It("should merge the summary with the first listed version", func() {
		updated := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
		summary := services.PackageSummary{
			Name:        "vendor/seo",
			Description: "SEO tools",
			Repository:  "https://github.com/vendor/seo",
			Downloads:   999,
			Favers:      12,
		}
		details := services.PackageDetails{
			Name:             "vendor/seo",
			Dependents:       3,
			MonthlyDownloads: 450,
			Versions: []services.VersionDetails{
				{Key: "dev-main", Version: "dev-main", Time: updated, Handle: "seo"},
				{Key: "9.9.9", Version: "9.9.9", Time: updated.Add(time.Hour), Handle: "old-seo"},
			},
		}
		client := mock.NewMockRegistryClient(nil, map[string]services.PackageDetails{summary.Name: details})

		records, err := plugins.NewEnricher(client, nil).Enrich(ctx, []services.PackageSummary{summary})

		assertT.NoError(err)
		assertT.Equal([]plugins.Record{{
			Name:        "vendor/seo",
			Description: "SEO tools",
			Handle:      "seo",
			Repository:  "https://github.com/vendor/seo",
			Version:     "dev-main",
			Downloads:   450,
			Dependents:  3,
			Favers:      12,
			Updated:     updated,
		}}, records)
	})

	It("should report progress once per package", func() {
		summaries := testutil.FakeSummaries(3)
		client := mock.NewMockRegistryClient(summaries, testutil.FakeDetails(summaries))

		var calls [][2]int
		_, err := plugins.NewEnricher(client, func(done, total int) {
			calls = append(calls, [2]int{done, total})
		}).Enrich(ctx, summaries)

		assertT.NoError(err)
		assertT.Equal([][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
	})

	It("should return an empty list without calling the registry for no summaries", func() {
		client := &mock.MockRegistryClient{}

		records, err := plugins.NewEnricher(client, nil).Enrich(ctx, nil)

		assertT.NoError(err)
		assertT.Empty(records)
		client.AssertNotCalled(GinkgoT(), "GetPackageDetails", tmock.Anything, tmock.Anything)
	})

	It("should stop at the first failing package and name it", func() {
		summaries := testutil.FakeSummaries(3)
		details := testutil.FakeDetails(summaries)
		cause := errors.New("connection reset")

		client := &mock.MockRegistryClient{}
		client.On("GetPackageDetails", tmock.Anything, summaries[0].Name).Return(details[summaries[0].Name], nil).Once()
		client.On("GetPackageDetails", tmock.Anything, summaries[1].Name).Return(services.PackageDetails{}, cause).Once()

		records, err := plugins.NewEnricher(client, nil).Enrich(ctx, summaries)

		assertT.Nil(records)
		assertT.ErrorIs(err, custom_errors.ErrEnrichment)
		assertT.ErrorIs(err, cause)

		var enrichmentErr *custom_errors.EnrichmentError
		assertT.ErrorAs(err, &enrichmentErr)
		assertT.Equal(summaries[1].Name, enrichmentErr.Package)

		client.AssertNotCalled(GinkgoT(), "GetPackageDetails", tmock.Anything, summaries[2].Name)
	})

	It("should fail for a package without versions", func() {
		summary := services.PackageSummary{Name: "vendor/empty"}
		client := mock.NewMockRegistryClient(nil, map[string]services.PackageDetails{
			summary.Name: {Name: summary.Name},
		})

		_, err := plugins.NewEnricher(client, nil).Enrich(ctx, []services.PackageSummary{summary})

		assertT.ErrorIs(err, custom_errors.ErrEnrichment)
		assertT.ErrorContains(err, "vendor/empty")
		assertT.ErrorContains(err, "no versions")
	})
})
