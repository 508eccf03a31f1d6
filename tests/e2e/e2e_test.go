// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"testing"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
	_ "github.com/glanger-labs/glanger-cli/tests/e2e/testcases/cli"
	_ "github.com/glanger-labs/glanger-cli/tests/e2e/testcases/nft"
	e2eutils "github.com/glanger-labs/glanger-cli/tests/e2e/utils"
)

func TestE2e(t *testing.T) {
	if !utils.IsE2E() {
		t.Skip("Environment variable RUN_E2E not set; skipping E2E tests")
	}
	gomega.RegisterFailHandler(ginkgo.Fail)
	format.UseStringerRepresentation = true
	ginkgo.RunSpecs(t, "glanger e2e test suites")
}

var _ = ginkgo.BeforeSuite(func() {
	format.MaxLength = 40000
	gomega.Expect(os.Chdir(e2eutils.RootDir)).Should(gomega.Succeed())
	_, err := e2eutils.ArtifactPath()
	gomega.Expect(err).Should(gomega.BeNil())
	ux.NewUserLog(zap.NewNop(), ginkgo.GinkgoWriter)
	cmd := exec.Command("./scripts/build.sh")
	out, err := cmd.CombinedOutput()
	fmt.Println(string(out))
	gomega.Expect(err).Should(gomega.BeNil())
})
