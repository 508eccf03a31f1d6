// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package commands

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/tests/e2e/utils"
)

const (
	CLIBinary  = "./bin/glanger"
	DeployCmd  = "deploy"
	NetworkCmd = "network"
	NFTCmd     = "nft"
)

// Home is the HOME the binary runs with, so deployments are recorded apart
// from the user's own
var Home string

/* #nosec G204 */
func run(args ...string) (string, error) {
	args = append(args, "--env-file", Home+"/.env")
	cmd := exec.Command(CLIBinary, args...)
	cmd.Env = append(os.Environ(), "HOME="+Home)
	output, err := cmd.CombinedOutput()
	if err != nil {
		utils.PrintStdErr(err)
	}
	return string(output), err
}

func Deploy(executor string, maxSupply uint64) (string, error) {
	return run(
		DeployCmd,
		"--network", constants.LocalNetwork,
		"--account", strconv.Itoa(utils.OwnerIndex),
		"--executor", executor,
		"--max-supply", strconv.FormatUint(maxSupply, 10),
	)
}

func ListNetworks() (string, error) {
	return run(NetworkCmd, "list")
}

func Describe() (string, error) {
	return run(NFTCmd, "describe", "--network", constants.LocalNetwork)
}

func SetStage(account int, stageType int, start int64, end int64, maxQuantity uint64, price string) (string, error) {
	return run(
		NFTCmd, "stage", "set", strconv.Itoa(stageType),
		"--network", constants.LocalNetwork,
		"--account", strconv.Itoa(account),
		"--start", strconv.FormatInt(start, 10),
		"--end", strconv.FormatInt(end, 10),
		"--max-quantity", strconv.FormatUint(maxQuantity, 10),
		"--price", price,
	)
}

func GetStage(stageType int) (string, error) {
	return run(NFTCmd, "stage", "get", strconv.Itoa(stageType), "--network", constants.LocalNetwork)
}

func Pause(paused bool, account int) (string, error) {
	return run(
		NFTCmd, "pause", strconv.FormatBool(paused),
		"--network", constants.LocalNetwork,
		"--account", strconv.Itoa(account),
	)
}

func SetExecutor(executor string) (string, error) {
	return run(
		NFTCmd, "executor", executor,
		"--network", constants.LocalNetwork,
		"--account", strconv.Itoa(utils.OwnerIndex),
	)
}

func Withdraw(to string) (string, error) {
	return run(
		NFTCmd, "withdraw", to,
		"--network", constants.LocalNetwork,
		"--account", strconv.Itoa(utils.OwnerIndex),
	)
}
