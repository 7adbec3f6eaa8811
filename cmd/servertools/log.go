package main

import (
	"os"
	"path/filepath"

	"github.com/rifflock/lfshook"
	"github.com/servertools/servertools/utils"
	"github.com/sirupsen/logrus"
)

func setupLogging(isDebug bool) {
	logrus.SetLevel(logrus.InfoLevel)
	if isDebug {
		logrus.SetLevel(logrus.TraceLevel)
	}
	logrus.SetOutput(os.Stdout)

	logPath := utils.PathData("servertools.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		logrus.Warnf("Failed to create log directory %s", err)
		return
	}
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logrus.Warnf("Failed to open log file %s", err)
		return
	}
	utils.OnExit(func() {
		logFile.Close()
	})

	logrus.AddHook(lfshook.NewHook(logFile, &logrus.TextFormatter{
		DisableColors: true,
	}))
}
