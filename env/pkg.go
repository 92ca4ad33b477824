// Package env exposes the mode the binary was built for.
package env

import (
	"github.com/louiss0/craft-packages/build_info"
)

type GoEnv struct {
	goEnv string
}

func NewGoEnv() GoEnv {
	return GoEnv{build_info.GO_MODE.String()}
}

// Mode returns the current mode string (e.g., "production", "development").
func (e GoEnv) Mode() string {
	return e.goEnv
}

func (e GoEnv) IsDebugMode() bool {
	return e.goEnv == "debug"
}

func (e GoEnv) IsDevelopmentMode() bool {
	return e.goEnv == "development" || e.goEnv == ""
}

func (e GoEnv) IsProductionMode() bool {
	return e.goEnv == "production"
}

// ExecuteIfModeIsProduction runs cb only for release builds.
// Status chatter (progress bars, "Fetching..." lines) goes through here so tests stay quiet.
func (e GoEnv) ExecuteIfModeIsProduction(cb func()) {
	if e.IsProductionMode() {
		cb()
	}
}
