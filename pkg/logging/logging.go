// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging builds the application logger: a zap logger writing
// json lines to a size-rotated file, plus an optional console sink for
// levels at or above the display level.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

type Config struct {
	Directory    string
	Name         string
	LogLevel     zapcore.Level
	DisplayLevel zapcore.Level
	// megabytes
	MaxSize  int
	MaxFiles int
	// days, 0 keeps everything
	MaxAge int
	// console sink, defaults to stderr
	DisplayWriter io.Writer
}

func DefaultConfig(baseDir string) Config {
	return Config{
		Directory:    filepath.Join(baseDir, constants.LogDir),
		Name:         constants.LogName,
		LogLevel:     zapcore.InfoLevel,
		DisplayLevel: zapcore.ErrorLevel,
		MaxSize:      constants.MaxLogFileSize,
		MaxFiles:     constants.MaxNumOfLogFiles,
		MaxAge:       constants.RetainOldFiles,
	}
}

// ToLevel parses a level name, accepting the upper case names used on the command line
func ToLevel(l string) (zapcore.Level, error) {
	var level zapcore.Level
	switch strings.ToUpper(l) {
	case "VERBO", "TRACE":
		return zapcore.DebugLevel, nil
	case "WARNING":
		return zapcore.WarnLevel, nil
	case "OFF":
		return zapcore.FatalLevel + 1, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(l))); err != nil {
		return level, fmt.Errorf("unknown log level %q", l)
	}
	return level, nil
}

// New creates the log directory if needed and returns a logger that writes to
// <Directory>/<Name>.log with rotation. The returned closer flushes and closes the file.
func New(config Config) (*zap.Logger, func() error, error) {
	if err := os.MkdirAll(config.Directory, constants.DefaultPerms755); err != nil {
		return nil, nil, fmt.Errorf("failed creating log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(config.Directory, config.Name+".log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxFiles,
		MaxAge:     config.MaxAge,
	}
	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), config.LogLevel),
	}
	if config.DisplayLevel <= zapcore.FatalLevel {
		displayWriter := config.DisplayWriter
		if displayWriter == nil {
			displayWriter = os.Stderr
		}
		consoleConfig := zap.NewDevelopmentEncoderConfig()
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleConfig),
			zapcore.AddSync(displayWriter),
			config.DisplayLevel,
		))
	}
	log := zap.New(zapcore.NewTee(cores...)).Named(config.Name)
	closer := func() error {
		_ = log.Sync()
		return rotator.Close()
	}
	return log, closer, nil
}
