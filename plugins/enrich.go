package plugins

import (
	"context"
	"fmt"

	"github.com/louiss0/craft-packages/custom_errors"
	"github.com/louiss0/craft-packages/services"
)

// DetailsFetcher is the part of the registry client the Enricher needs.
type DetailsFetcher interface {
	GetPackageDetails(ctx context.Context, name string) (services.PackageDetails, error)
}

// ProgressFunc is called after each summary is enriched with the number done so far and the total.
type ProgressFunc func(done, total int)

// Enricher fetches details for every search result, one request at a time.
type Enricher struct {
	fetcher  DetailsFetcher
	progress ProgressFunc
}

// NewEnricher creates an Enricher. progress may be nil.
func NewEnricher(fetcher DetailsFetcher, progress ProgressFunc) *Enricher {
	return &Enricher{fetcher: fetcher, progress: progress}
}

// Enrich returns one Record per summary in input order.
// The first failing package aborts the whole run with a *custom_errors.EnrichmentError;
// no partial result is returned.
func (e *Enricher) Enrich(ctx context.Context, summaries []services.PackageSummary) ([]Record, error) {
	records := make([]Record, 0, len(summaries))

	for i, summary := range summaries {
		details, err := e.fetcher.GetPackageDetails(ctx, summary.Name)
		if err != nil {
			return nil, custom_errors.NewEnrichmentError(summary.Name, err)
		}

		record, err := merge(summary, details)
		if err != nil {
			return nil, custom_errors.NewEnrichmentError(summary.Name, err)
		}
		records = append(records, record)

		if e.progress != nil {
			e.progress(i+1, len(summaries))
		}
	}

	return records, nil
}

// merge takes version, handle and updated from the first version the registry listed.
// That entry is not necessarily the newest release.
func merge(summary services.PackageSummary, details services.PackageDetails) (Record, error) {
	if len(details.Versions) == 0 {
		return Record{}, fmt.Errorf("package has no versions")
	}
	first := details.Versions[0]

	return Record{
		Name:        summary.Name,
		Description: summary.Description,
		Handle:      first.Handle,
		Repository:  summary.Repository,
		Version:     first.Version,
		Downloads:   details.MonthlyDownloads,
		Dependents:  details.Dependents,
		Favers:      summary.Favers,
		Updated:     first.Time,
	}, nil
}
