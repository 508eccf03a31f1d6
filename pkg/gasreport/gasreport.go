// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gasreport aggregates the gas used by contract transactions and
// renders it as a table, one row per method plus the deployment.
package gasreport

import (
	"math/big"
	"sort"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

// method name the contract binding records deployments under
const DeployMethod = "deploy"

var gwei = big.NewInt(1_000_000_000)

type MethodStats struct {
	Method string
	Calls  int
	Min    uint64
	Max    uint64
	Total  uint64
}

func (s MethodStats) Avg() uint64 {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / uint64(s.Calls)
}

// Reporter collects gas usage. A disabled reporter ignores every record.
type Reporter struct {
	contract string
	settings config.GasReporter

	lock  sync.Mutex
	stats map[string]*MethodStats
}

func New(contract string, settings config.GasReporter) *Reporter {
	return &Reporter{
		contract: contract,
		settings: settings,
		stats:    map[string]*MethodStats{},
	}
}

func (r *Reporter) Enabled() bool {
	return r != nil && r.settings.Enabled
}

// Record adds a mined transaction of [method] that used [gasUsed]
func (r *Reporter) Record(method string, gasUsed uint64) {
	if !r.Enabled() {
		return
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	s, ok := r.stats[method]
	if !ok {
		s = &MethodStats{Method: method, Min: gasUsed, Max: gasUsed}
		r.stats[method] = s
	}
	s.Calls++
	s.Total += gasUsed
	if gasUsed < s.Min {
		s.Min = gasUsed
	}
	if gasUsed > s.Max {
		s.Max = gasUsed
	}
}

// Methods returns the stats of every called method sorted by name, deployment excluded
func (r *Reporter) Methods() []MethodStats {
	r.lock.Lock()
	defer r.lock.Unlock()
	methods := []MethodStats{}
	for name, s := range r.stats {
		if name != DeployMethod {
			methods = append(methods, *s)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Method < methods[j].Method })
	return methods
}

// Deployment returns the deployment stats, if any deployment was recorded
func (r *Reporter) Deployment() (MethodStats, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	s, ok := r.stats[DeployMethod]
	if !ok {
		return MethodStats{}, false
	}
	return *s, true
}

// Cost returns the price in wei of [gas] at the configured gas price
func (r *Reporter) Cost(gas uint64) *big.Int {
	price := new(big.Int).Mul(new(big.Int).SetUint64(r.settings.GasPriceGwei), gwei)
	return price.Mul(price, new(big.Int).SetUint64(gas))
}

// Table renders the collected stats
func (r *Reporter) Table() table.Writer {
	t := ux.DefaultTable(
		r.contract+" gas usage",
		table.Row{"Method", "# calls", "Min", "Max", "Avg", "Avg cost (ETH)"},
	)
	ux.AlignRight(t, 2, 3, 4, 5, 6)
	for _, s := range r.Methods() {
		t.AppendRow(r.row(s.Method, s))
	}
	if s, ok := r.Deployment(); ok {
		t.AppendSeparator()
		t.AppendRow(r.row(r.contract+" (deployment)", s))
	}
	t.AppendFooter(table.Row{
		"Gas price",
		ux.ConvertToStringWithThousandSeparator(r.settings.GasPriceGwei) + " gwei",
		"",
		"",
		"Currency",
		r.settings.Currency,
	})
	return t
}

func (r *Reporter) row(label string, s MethodStats) table.Row {
	return table.Row{
		label,
		s.Calls,
		ux.ConvertToStringWithThousandSeparator(s.Min),
		ux.ConvertToStringWithThousandSeparator(s.Max),
		ux.ConvertToStringWithThousandSeparator(s.Avg()),
		utils.FormatEther(r.Cost(s.Avg())),
	}
}

// Print writes the table to the user when the reporter is enabled and
// something was recorded
func (r *Reporter) Print() {
	if !r.Enabled() {
		return
	}
	r.lock.Lock()
	empty := len(r.stats) == 0
	r.lock.Unlock()
	if empty {
		return
	}
	ux.Logger.PrintToUser("%s", r.Table().Render())
}
