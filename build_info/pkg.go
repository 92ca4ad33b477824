// Package build_info holds the values stamped into the binary at release time.
// All variables must be capitalised and must use the `BuildInfo` type.
// Validation of the raw values happens once in init.
package build_info

import (
	"fmt"
	"regexp"
	"time"

	"github.com/samber/lo"
)

// BuildInfo is a string stamped in through -ldflags.
type BuildInfo string

func (value BuildInfo) String() string {
	return string(value)
}

// Raw values overridden by -ldflags "-X github.com/louiss0/craft-packages/build_info.rawCLI_VERSION=...".
var (
	rawCLI_VERSION = "dev"
	rawGO_MODE     = "development"
	rawBUILD_DATE  = "unknown"
)

var (
	CLI_VERSION BuildInfo
	GO_MODE     BuildInfo
	BUILD_DATE  BuildInfo
)

// AllowedModes lists the values GO_MODE may take.
var AllowedModes = []string{"development", "production", "debug"}

const semverRegex = `^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`

func init() {
	version, mode, date, err := normalize(rawCLI_VERSION, rawGO_MODE, rawBUILD_DATE)
	if err != nil {
		panic(fmt.Sprintf("build_info: %v", err))
	}

	CLI_VERSION = BuildInfo(version)
	GO_MODE = BuildInfo(mode)
	BUILD_DATE = BuildInfo(date)
}

// normalize strips a leading "v" from the version, reduces an RFC 3339 date to YYYY-MM-DD
// and rejects values a release build must never carry.
func normalize(version, mode, date string) (string, string, string, error) {
	if len(version) > 0 && version[0] == 'v' {
		version = version[1:]
	}

	if !lo.Contains(AllowedModes, mode) {
		return "", "", "", fmt.Errorf("invalid GO_MODE %q, must be one of %v", mode, AllowedModes)
	}

	if version != "dev" && !regexp.MustCompile(semverRegex).MatchString(version) {
		return "", "", "", fmt.Errorf("invalid CLI_VERSION %q, must be a semver string", version)
	}

	if date == "unknown" {
		if mode == "production" {
			return "", "", "", fmt.Errorf("BUILD_DATE must be set via ldflags in production mode")
		}
		return version, mode, date, nil
	}

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		date = t.Format(time.DateOnly)
	}

	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", "", "", fmt.Errorf("invalid BUILD_DATE %q: %w", date, err)
	}

	return version, mode, date, nil
}
