// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

var ErrNotDeployed = errors.New("contract not deployed on network")

// NetworkData is what a deployment left on one network
type NetworkData struct {
	Address               common.Address
	TxHash                common.Hash
	BlockNumber           uint64
	GasUsed               uint64
	ChainID               uint64
	Deployer              common.Address
	Executor              common.Address
	BaseTokenURI          string
	OpenBoxBeforeTokenURI string
	MaxTotalSupply        uint64
	OpenBoxTime           int64
	Verified              bool
}

// Sidecar records the deployments of a contract, per network name
type Sidecar struct {
	Name     string
	Version  string
	Networks map[string]NetworkData
}

// Deployment returns the data of the deployment on [network]
func (sc Sidecar) Deployment(network string) (NetworkData, error) {
	data, ok := sc.Networks[network]
	if !ok {
		return NetworkData{}, fmt.Errorf("%w %s: %s", ErrNotDeployed, network, sc.Name)
	}
	return data, nil
}

// SetDeployment replaces the deployment recorded for [network]
func (sc *Sidecar) SetDeployment(network string, data NetworkData) {
	if sc.Networks == nil {
		sc.Networks = map[string]NetworkData{}
	}
	sc.Networks[network] = data
}

// DeployedNetworks returns the sorted names of the networks with a deployment
func (sc Sidecar) DeployedNetworks() []string {
	names := make([]string, 0, len(sc.Networks))
	for name := range sc.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
