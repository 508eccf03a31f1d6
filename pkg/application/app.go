// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/models"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
)

type Glanger struct {
	Log     *zap.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
}

func New() *Glanger {
	return &Glanger{}
}

func (app *Glanger) Setup(baseDir string, log *zap.Logger, conf *config.Config, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
}

func (app *Glanger) GetBaseDir() string {
	return app.baseDir
}

func (app *Glanger) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Glanger) GetDeploymentsDir() string {
	return filepath.Join(app.baseDir, constants.DeploymentsDir)
}

func (app *Glanger) GetSidecarPath(contractName string) string {
	return filepath.Join(app.GetDeploymentsDir(), contractName+constants.SidecarSuffix)
}

func (app *Glanger) SidecarExists(contractName string) bool {
	_, err := os.Stat(app.GetSidecarPath(contractName))
	return err == nil
}

// LoadSidecar returns the recorded deployments of [contractName], empty if there are none
func (app *Glanger) LoadSidecar(contractName string) (models.Sidecar, error) {
	sidecarPath := app.GetSidecarPath(contractName)
	jsonBytes, err := os.ReadFile(sidecarPath)
	if errors.Is(err, os.ErrNotExist) {
		return models.Sidecar{Name: contractName, Networks: map[string]models.NetworkData{}}, nil
	}
	if err != nil {
		return models.Sidecar{}, err
	}
	var sc models.Sidecar
	if err := json.Unmarshal(jsonBytes, &sc); err != nil {
		return models.Sidecar{}, fmt.Errorf("failure decoding %s: %w", sidecarPath, err)
	}
	return sc, nil
}

func (app *Glanger) UpdateSidecar(sc *models.Sidecar) error {
	sc.Version = constants.SidecarVersion
	scBytes, err := json.MarshalIndent(sc, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(app.GetDeploymentsDir(), constants.DefaultPerms755); err != nil {
		return err
	}
	return os.WriteFile(app.GetSidecarPath(sc.Name), scBytes, constants.WriteReadReadPerms)
}

// RecordDeployment stores [data] as the deployment of [contractName] on [network]
func (app *Glanger) RecordDeployment(contractName string, network string, data models.NetworkData) error {
	sc, err := app.LoadSidecar(contractName)
	if err != nil {
		return err
	}
	sc.Name = contractName
	sc.SetDeployment(network, data)
	return app.UpdateSidecar(&sc)
}

// GetDeployment returns the recorded deployment of [contractName] on [network]
func (app *Glanger) GetDeployment(contractName string, network string) (models.NetworkData, error) {
	sc, err := app.LoadSidecar(contractName)
	if err != nil {
		return models.NetworkData{}, err
	}
	return sc.Deployment(network)
}
