// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const defaultDenomination = 18

var ErrInvalidAmount = errors.New("invalid amount")

// ParseUnits converts a decimal string of the given denomination into base units
// (i.e. "0.1" with 18 decimals results in 100000000000000000)
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	intPart, fracPart, hasDot := strings.Cut(amount, ".")
	if hasDot && fracPart == "" && intPart == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if len(fracPart) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, amount, decimals)
	}
	if intPart == "" {
		intPart = "0"
	}
	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
		}
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return v, nil
}

// ParseEther converts an ether amount into wei
func ParseEther(amount string) (*big.Int, error) {
	return ParseUnits(amount, defaultDenomination)
}

// MustParseEther is ParseEther for compile time constants
func MustParseEther(amount string) *big.Int {
	v, err := ParseEther(amount)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatUnits converts an amount in base units into a decimal string of the given
// denomination, without trailing zeros
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Set(amount)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}
	s := abs.String()
	if decimals == 0 {
		return sign + s
	}
	if len(s) <= int(decimals) {
		s = strings.Repeat("0", int(decimals)-len(s)+1) + s
	}
	intPart := s[:len(s)-int(decimals)]
	fracPart := strings.TrimRight(s[len(s)-int(decimals):], "0")
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

// FormatEther converts wei into an ether decimal string
func FormatEther(amount *big.Int) string {
	return FormatUnits(amount, defaultDenomination)
}
