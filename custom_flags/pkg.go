// Package custom_flags provides custom flag types for command-line argument parsing.
// It implements pflag.Value types that can be used with the cobra CLI framework.
package custom_flags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/louiss0/craft-packages/custom_errors"
)

var (
	blankRegex   = regexp.MustCompile(`^\s*$`)
	integerRegex = regexp.MustCompile(`^\d+$`)
)

// UnionFlag extends pflag.Value for flags whose value should be one of a known set.
type UnionFlag interface {
	pflag.Value
	FlagName() string
	AllowedValues() []string
}

// RangeFlag extends pflag.Value for integer flags bounded by a range.
type RangeFlag interface {
	pflag.Value
	FlagName() string
	Value() int
	Min() int
	Max() int
}

// unionFlag holds a value that is expected to be one of allowedValues.
// Set only rejects blank input; membership is checked by the command so it can decide
// whether an unknown value is fatal or just a warning.
type unionFlag struct {
	value         string
	allowedValues []string
	flagName      string
}

// NewUnionFlag creates a UnionFlag that starts out holding defaultValue.
func NewUnionFlag(allowedValues []string, flagName, defaultValue string) UnionFlag {
	return &unionFlag{
		value:         defaultValue,
		allowedValues: allowedValues,
		flagName:      flagName,
	}
}

// String returns the flag's value as a string
func (u unionFlag) String() string {
	return u.value
}

// Set stores the value after trimming surrounding whitespace
func (u *unionFlag) Set(value string) error {
	if blankRegex.MatchString(value) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(u.flagName),
			fmt.Sprintf("cannot be empty, use one of %v", u.allowedValues),
		)
	}
	u.value = strings.TrimSpace(value)
	return nil
}

// Type returns the flag type as a string
func (u unionFlag) Type() string {
	return "string"
}

// FlagName returns the flag's name for testing
func (u unionFlag) FlagName() string {
	return u.flagName
}

// AllowedValues returns the values used for validation and shell completion
func (u unionFlag) AllowedValues() []string {
	return u.allowedValues
}

// rangeFlag represents a flag that must be an integer within a specified range
type rangeFlag struct {
	value, min, max int
	flagName        string
}

// NewRangeFlag creates a new RangeFlag with the given flag name, range bounds and default value
func NewRangeFlag(flagName string, min, max, defaultValue int) RangeFlag {
	if min > max {
		panic("min must be less than max")
	}
	if min < 0 || max < 0 {
		panic("min and max must be non-negative")
	}
	if defaultValue < min || defaultValue > max {
		panic("default value must be within min and max")
	}
	return &rangeFlag{
		value:    defaultValue,
		min:      min,
		max:      max,
		flagName: flagName,
	}
}

// String returns the flag's value as a string
func (r rangeFlag) String() string {
	return strconv.Itoa(r.value)
}

// Value returns the flag's value as an int
func (r rangeFlag) Value() int {
	return r.value
}

// Set validates and sets the flag's value, ensuring it's within the allowed range
func (r *rangeFlag) Set(value string) error {
	if !integerRegex.MatchString(value) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(r.flagName),
			fmt.Sprintf("must be an integer between %d and %d", r.min, r.max),
		)
	}

	num, err := strconv.Atoi(value)
	if err != nil || num < r.min || num > r.max {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(r.flagName),
			fmt.Sprintf("must be between %d and %d", r.min, r.max),
		)
	}

	r.value = num
	return nil
}

// Type returns the flag type as a string
func (r rangeFlag) Type() string {
	return "int"
}

// FlagName returns the flag's name for testing
func (r rangeFlag) FlagName() string {
	return r.flagName
}

// Min returns the minimum value for testing
func (r rangeFlag) Min() int {
	return r.min
}

// Max returns the maximum value for testing
func (r rangeFlag) Max() int {
	return r.max
}
