// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cli

import (
	"fmt"
	"os"
	"regexp"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/fixtures"
	"github.com/glanger-labs/glanger-cli/tests/e2e/commands"
	"github.com/glanger-labs/glanger-cli/tests/e2e/utils"
)

var tokenAddressRe = regexp.MustCompile(`Token address: (0x[0-9a-fA-F]{40})`)

var _ = ginkgo.Describe("[CLI]", ginkgo.Ordered, func() {
	var (
		h       *utils.Harness
		address string
	)

	ginkgo.BeforeAll(func() {
		var err error
		commands.Home, err = os.MkdirTemp("", "glanger-e2e")
		gomega.Expect(err).Should(gomega.BeNil())
		h, err = utils.NewHarness()
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.AfterAll(func() {
		if h != nil {
			h.Close()
		}
		_ = os.RemoveAll(commands.Home)
	})

	ginkgo.It("lists the networks", func() {
		output, err := commands.ListNetworks()
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring(constants.GoerliNetwork))
		gomega.Expect(output).Should(gomega.ContainSubstring(constants.LocalNetwork))
	})

	ginkgo.It("rejects an invalid executor", func() {
		output, err := commands.Deploy("0x1234", constants.DefaultMaxTotalSupply)
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(output).Should(gomega.ContainSubstring("Error"))
	})

	ginkgo.It("deploys and records the contract", func() {
		executor := h.Executor().Address.Hex()
		output, err := commands.Deploy(executor, constants.DefaultMaxTotalSupply)
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("Deploying contracts with the account: " + h.Owner().Address.Hex()))
		gomega.Expect(output).Should(gomega.ContainSubstring("Account balance: "))
		matches := tokenAddressRe.FindStringSubmatch(output)
		gomega.Expect(matches).Should(gomega.HaveLen(2))
		address = matches[1]
	})

	ginkgo.It("describes the recorded deployment", func() {
		output, err := commands.Describe()
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring(address))
		gomega.Expect(output).Should(gomega.ContainSubstring(h.Executor().Address.Hex()))
	})

	ginkgo.It("sets and reads a stage", func() {
		now, err := h.Raw.LatestBlockTimestamp()
		gomega.Expect(err).Should(gomega.BeNil())
		stage := fixtures.Default().Rebase(int64(now)).Stage2
		output, err := commands.SetStage(utils.ExecutorIndex, 2, stage.StartTime, stage.EndTime, stage.MaxQuantity, "0.01")
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("Stage 2 set"))

		output, err = commands.GetStage(2)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("0.01"))
	})

	ginkgo.It("reports reverts with their reason", func() {
		now, err := h.Raw.LatestBlockTimestamp()
		gomega.Expect(err).Should(gomega.BeNil())
		stage := fixtures.Default().Rebase(int64(now)).Stage1
		output, err := commands.SetStage(utils.OwnerIndex, 1, stage.StartTime, stage.EndTime, stage.MaxQuantity, "0.1")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(output).Should(gomega.ContainSubstring("transaction reverted: caller is not Executor"))
	})

	ginkgo.It("pauses as owner", func() {
		output, err := commands.Pause(true, utils.OwnerIndex)
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("Paused: true"))
	})

	ginkgo.It("withdraws and hands over the executor role", func() {
		output, err := commands.Withdraw(h.Other().Address.Hex())
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("Withdrew 0 ETH"))

		output, err = commands.SetExecutor(h.Buyer().Address.Hex())
		if err != nil {
			fmt.Println(output)
		}
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(output).Should(gomega.ContainSubstring("Executor: " + h.Buyer().Address.Hex()))
	})
})
