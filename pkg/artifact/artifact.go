// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package artifact reads the compiler output that the deploy and verify
// commands need: hardhat contract artifacts and their build info.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

const (
	dbgSuffix         = ".dbg.json"
	placeholderPrefix = "__$"
)

var (
	ErrNotFound          = errors.New("artifact not found")
	ErrMalformed         = errors.New("malformed artifact")
	ErrNoBytecode        = errors.New("artifact has no bytecode")
	ErrUnlinkedLibraries = errors.New("artifact bytecode has unlinked libraries")
)

type Artifact struct {
	ContractName     string
	SourceName       string
	ABI              abi.ABI
	RawABI           json.RawMessage
	Bytecode         []byte
	DeployedBytecode []byte
	// file the artifact was read from
	Path string
}

type hardhatArtifact struct {
	Format                 string                     `json:"_format"`
	ContractName           string                     `json:"contractName"`
	SourceName             string                     `json:"sourceName"`
	ABI                    json.RawMessage            `json:"abi"`
	Bytecode               string                     `json:"bytecode"`
	DeployedBytecode       string                     `json:"deployedBytecode"`
	LinkReferences         map[string]json.RawMessage `json:"linkReferences"`
	DeployedLinkReferences map[string]json.RawMessage `json:"deployedLinkReferences"`
}

type debugFile struct {
	BuildInfo string `json:"buildInfo"`
}

// BuildInfoFile is the solc run that produced an artifact
type BuildInfoFile struct {
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// Load reads a hardhat artifact json file
func Load(path string) (*Artifact, error) {
	path = utils.ExpandHome(path)
	bs, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failure reading artifact %s: %w", path, err)
	}
	artifact, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	artifact.Path = path
	return artifact, nil
}

// Parse decodes the content of a hardhat artifact
func Parse(bs []byte) (*Artifact, error) {
	var raw hardhatArtifact
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("%w: missing abi", ErrMalformed)
	}
	contractABI, err := abi.JSON(strings.NewReader(string(raw.ABI)))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid abi: %w", ErrMalformed, err)
	}
	if len(raw.LinkReferences) > 0 || strings.Contains(raw.Bytecode, placeholderPrefix) {
		return nil, fmt.Errorf("%w: %s", ErrUnlinkedLibraries, raw.ContractName)
	}
	bytecode, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("%w: bytecode: %w", ErrMalformed, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBytecode, raw.ContractName)
	}
	deployedBytecode, err := decodeBytecode(raw.DeployedBytecode)
	if err != nil {
		return nil, fmt.Errorf("%w: deployed bytecode: %w", ErrMalformed, err)
	}
	return &Artifact{
		ContractName:     raw.ContractName,
		SourceName:       raw.SourceName,
		ABI:              contractABI,
		RawABI:           raw.ABI,
		Bytecode:         bytecode,
		DeployedBytecode: deployedBytecode,
	}, nil
}

func decodeBytecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// PathFor returns where hardhat writes the artifact of contract [name] under [root]
func PathFor(root string, name string) string {
	return filepath.Join(root, constants.ArtifactsDir, "contracts", name+".sol", name+".json")
}

// LoadByName loads the artifact of contract [name] compiled under project [root]
func LoadByName(root string, name string) (*Artifact, error) {
	return Load(PathFor(root, name))
}

// BuildInfo follows the debug file written next to [artifactPath] to the
// build info of the compilation that produced it
func BuildInfo(artifactPath string) (*BuildInfoFile, error) {
	artifactPath = utils.ExpandHome(artifactPath)
	dbgPath := strings.TrimSuffix(artifactPath, ".json") + dbgSuffix
	bs, err := os.ReadFile(dbgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dbgPath)
		}
		return nil, fmt.Errorf("failure reading %s: %w", dbgPath, err)
	}
	var dbg debugFile
	if err := json.Unmarshal(bs, &dbg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, dbgPath, err)
	}
	if dbg.BuildInfo == "" {
		return nil, fmt.Errorf("%w: %s has no build info reference", ErrMalformed, dbgPath)
	}
	buildInfoPath := dbg.BuildInfo
	if !filepath.IsAbs(buildInfoPath) {
		buildInfoPath = filepath.Join(filepath.Dir(dbgPath), buildInfoPath)
	}
	bs, err = os.ReadFile(buildInfoPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, buildInfoPath)
		}
		return nil, fmt.Errorf("failure reading %s: %w", buildInfoPath, err)
	}
	var buildInfo BuildInfoFile
	if err := json.Unmarshal(bs, &buildInfo); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, buildInfoPath, err)
	}
	if len(buildInfo.Input) == 0 {
		return nil, fmt.Errorf("%w: %s has no compiler input", ErrMalformed, buildInfoPath)
	}
	return &buildInfo, nil
}

// CompilerVersion returns the version string explorers expect, like v0.8.17+commit.8df45f5f
func (b *BuildInfoFile) CompilerVersion() string {
	version := b.SolcLongVersion
	if version == "" {
		version = b.SolcVersion
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}

// FullyQualifiedName returns source:contract, as used by verification
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}
