// Package services provides the registry integration for craft-packages.
// It searches Packagist for packages of a given type and fetches per-package details.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	// DefaultBaseURL is the public Packagist API host.
	DefaultBaseURL = "https://packagist.org"
	// CraftPluginType is the Composer package type Craft CMS plugins publish under.
	CraftPluginType = "craft-plugin"
	// MaxPerPage is the largest page size the search endpoint honours.
	MaxPerPage = 100
)

// ErrPackageNotFound is returned when the registry has no package with the requested name.
var ErrPackageNotFound = errors.New("package not found")

// PackageSummary is one entry of a search result page.
type PackageSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Repository  string `json:"repository"`
	Downloads   int    `json:"downloads"`
	Favers      int    `json:"favers"`
}

// VersionDetails is one entry of a package's version map.
type VersionDetails struct {
	Key     string
	Version string
	Time    time.Time
	Handle  string
}

// PackageDetails holds the fields of the package detail endpoint that enrichment needs.
// Versions keep the order the registry listed them in.
type PackageDetails struct {
	Name             string
	Dependents       int
	MonthlyDownloads int
	Versions         []VersionDetails
}

// RegistryClient defines the registry operations the CLI depends on.
type RegistryClient interface {
	SearchByType(ctx context.Context, packageType string, limit int) ([]PackageSummary, error)
	GetPackageDetails(ctx context.Context, name string) (PackageDetails, error)
}

// packagistRegistryServiceImpl talks to the Packagist JSON API.
type packagistRegistryServiceImpl struct {
	client  *http.Client
	baseURL string
}

// NewPackagistRegistryService creates a RegistryClient for the Packagist API at baseURL
// (normally DefaultBaseURL) with a default HTTP client.
func NewPackagistRegistryService(baseURL string) RegistryClient {
	return NewPackagistRegistryServiceWithClient(
		&http.Client{Timeout: 10 * time.Second},
		baseURL,
	)
}

// NewPackagistRegistryServiceWithClient allows injecting a custom HTTP client and base URL,
// e.g. an httptest server in unit tests or a Packagist mirror.
func NewPackagistRegistryServiceWithClient(client *http.Client, baseURL string) RegistryClient {
	return &packagistRegistryServiceImpl{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type searchResponse struct {
	Results []PackageSummary `json:"results"`
	Total   int              `json:"total"`
	Next    string           `json:"next"`
}

// SearchByType returns up to limit packages of packageType.
// Pages are requested one after another, following the "next" link until limit is reached.
func (s *packagistRegistryServiceImpl) SearchByType(ctx context.Context, packageType string, limit int) ([]PackageSummary, error) {
	if packageType == "" {
		return nil, fmt.Errorf("package type cannot be empty")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := url.Values{}
	query.Set("type", packageType)
	query.Set("per_page", strconv.Itoa(lo.Min([]int{limit, MaxPerPage})))
	pageURL := fmt.Sprintf("%s/search.json?%s", s.baseURL, query.Encode())

	results := []PackageSummary{}
	for pageURL != "" && len(results) < limit {
		var page searchResponse
		if err := s.getJSON(ctx, pageURL, &page); err != nil {
			return nil, err
		}
		results = append(results, page.Results...)

		if len(page.Results) == 0 {
			break
		}
		pageURL = page.Next
	}

	return lo.Slice(results, 0, limit), nil
}

type detailsResponse struct {
	Package struct {
		Name       string `json:"name"`
		Dependents int    `json:"dependents"`
		Downloads  struct {
			Monthly int `json:"monthly"`
		} `json:"downloads"`
		Versions json.RawMessage `json:"versions"`
	} `json:"package"`
}

// GetPackageDetails fetches the detail document for a single package.
func (s *packagistRegistryServiceImpl) GetPackageDetails(ctx context.Context, name string) (PackageDetails, error) {
	if name == "" {
		return PackageDetails{}, fmt.Errorf("package name cannot be empty")
	}

	var resp detailsResponse
	if err := s.getJSON(ctx, fmt.Sprintf("%s/packages/%s.json", s.baseURL, name), &resp); err != nil {
		return PackageDetails{}, err
	}

	versions, err := decodeVersions(resp.Package.Versions)
	if err != nil {
		return PackageDetails{}, fmt.Errorf("failed to parse versions of %s: %w", name, err)
	}

	return PackageDetails{
		Name:             lo.Ternary(resp.Package.Name != "", resp.Package.Name, name),
		Dependents:       resp.Package.Dependents,
		MonthlyDownloads: resp.Package.Downloads.Monthly,
		Versions:         versions,
	}, nil
}

func (s *packagistRegistryServiceImpl) getJSON(ctx context.Context, target string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make HTTP request to packagist: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body from packagist: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrPackageNotFound, target)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("packagist returned status %d: %s (body: %s)", resp.StatusCode, resp.Status, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		return fmt.Errorf("failed to parse packagist response: %w", err)
	}

	return nil
}

type packagistVersion struct {
	Version string          `json:"version"`
	Time    string          `json:"time"`
	Extra   json.RawMessage `json:"extra"`
}

// decodeVersions walks the version object token by token so the entries come back in
// document order; unmarshalling into a map would lose which version the registry listed first.
// An empty version list arrives as [] rather than {}.
func decodeVersions(raw json.RawMessage) ([]VersionDetails, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch tok {
	case nil:
		return nil, nil
	case json.Delim('['):
		if dec.More() {
			return nil, fmt.Errorf("expected an object of versions, got a non-empty array")
		}
		return nil, nil
	case json.Delim('{'):
	default:
		return nil, fmt.Errorf("expected an object of versions, got %v", tok)
	}

	versions := []VersionDetails{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var v packagistVersion
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("version %s: %w", key, err)
		}

		var published time.Time
		if v.Time != "" {
			published, err = time.Parse(time.RFC3339, v.Time)
			if err != nil {
				return nil, fmt.Errorf("version %s: invalid time %q: %w", key, v.Time, err)
			}
		}

		versions = append(versions, VersionDetails{
			Key:     key,
			Version: v.Version,
			Time:    published,
			Handle:  handleFromExtra(v.Extra),
		})
	}

	return versions, nil
}

// handleFromExtra reads extra.handle, tolerating a missing, empty ([]) or oddly typed extra block.
func handleFromExtra(extra json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(extra, &fields); err != nil {
		return ""
	}

	var handle string
	if err := json.Unmarshal(fields["handle"], &handle); err != nil {
		return ""
	}
	return handle
}
