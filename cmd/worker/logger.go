package main

import (
	"fmt"
	"os"

	"hiresynapse/internal/middleware"
)

// asynqLogger routes asynq's internal logging into the application logger.
type asynqLogger struct{}

func newAsynqLogger() asynqLogger { return asynqLogger{} }

func (asynqLogger) Debug(args ...any) { middleware.Logger.Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any)  { middleware.Logger.Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any)  { middleware.Logger.Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { middleware.Logger.Error(fmt.Sprint(args...)) }

func (asynqLogger) Fatal(args ...any) {
	middleware.Logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
