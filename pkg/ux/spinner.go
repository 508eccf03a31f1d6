// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chelnak/ysmrr"
	"github.com/chelnak/ysmrr/pkg/animations"
	"github.com/chelnak/ysmrr/pkg/colors"
)

type UserSpinner struct {
	spinner ysmrr.SpinnerManager
	started bool
	mutex   sync.Mutex
}

func newSpinner(writer io.Writer) ysmrr.SpinnerManager {
	if writer == nil {
		writer = os.Stdout
	}
	return ysmrr.NewSpinnerManager(
		ysmrr.WithAnimation(animations.Dots),
		ysmrr.WithSpinnerColor(colors.FgHiBlue),
		ysmrr.WithWriter(writer),
	)
}

func NewUserSpinner() *UserSpinner {
	var writer io.Writer
	if Logger != nil {
		writer = Logger.Writer
	}
	return &UserSpinner{spinner: newSpinner(writer)}
}

func (us *UserSpinner) Stop() {
	us.mutex.Lock()
	defer us.mutex.Unlock()
	if us.started {
		us.spinner.Stop()
		us.started = false
	}
}

func (us *UserSpinner) SpinToUser(msg string, args ...interface{}) *ysmrr.Spinner {
	formattedMsg := fmt.Sprintf(msg, args...)
	Logger.Info("%s [Spinner Start]", formattedMsg)
	sp := us.spinner.AddSpinner(formattedMsg)
	us.mutex.Lock()
	if !us.started {
		us.spinner.Start()
		us.started = true
	}
	us.mutex.Unlock()
	return sp
}

// SpinFailWithError marks [s] as failed, naming [txHash] when the
// transaction was already sent
func SpinFailWithError(s *ysmrr.Spinner, txHash string, err error) {
	if txHash == "" {
		s.UpdateMessage(fmt.Sprintf("%s err:%v", s.GetMessage(), err))
	} else {
		s.UpdateMessage(fmt.Sprintf("%s tx:%s err:%v", s.GetMessage(), txHash, err))
	}
	s.Error()
	Logger.Info("%s [Spinner Err]", s.GetMessage())
}

func SpinComplete(s *ysmrr.Spinner) {
	if s.IsComplete() {
		return
	}
	s.Complete()
	Logger.Info("%s [Spinner Complete]", s.GetMessage())
}

// SpinWhile shows a spinner with [msg] while [f] runs, completing or failing
// it with the outcome of [f]
func SpinWhile[T any](msg string, f func() (T, error)) (T, error) {
	spinSession := NewUserSpinner()
	defer spinSession.Stop()
	spinner := spinSession.SpinToUser("%s", msg)
	result, err := f()
	if err != nil {
		SpinFailWithError(spinner, "", err)
		return result, err
	}
	SpinComplete(spinner)
	return result, nil
}
