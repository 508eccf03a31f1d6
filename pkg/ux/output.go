// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Logger is the process wide user output, set once by NewUserLog
var Logger *UserLog

// UserLog writes messages meant for the user to [Writer] and mirrors them to
// the log file
type UserLog struct {
	log    *zap.Logger
	Writer io.Writer
}

var (
	checkmark = color.New(color.FgHiGreen).Sprint("✓")
	xmark     = color.New(color.FgHiRed).Sprint("✗")
)

func NewUserLog(log *zap.Logger, userwriter io.Writer) {
	if Logger != nil {
		return
	}
	Logger = &UserLog{log: log, Writer: userwriter}
}

// PrintToUser prints msg directly on the screen, but also to log file
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	if ul == nil {
		fmt.Fprintln(os.Stdout, line)
		return
	}
	fmt.Fprintln(ul.Writer, line)
	ul.log.Info(strings.TrimSpace(line))
}

// Info only goes to the log file
func (ul *UserLog) Info(msg string, args ...interface{}) {
	if ul != nil {
		ul.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	ul.PrintToUser(checkmark+" "+msg, args...)
}

func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	ul.PrintToUser(xmark+" "+msg, args...)
}

// ConvertToStringWithThousandSeparator renders [input] with underscores between
// thousands, as in gas reports
func ConvertToStringWithThousandSeparator(input uint64) string {
	return strings.ReplaceAll(message.NewPrinter(language.English).Sprintf("%d", input), ",", "_")
}
