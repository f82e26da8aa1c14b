// Package logging provides a unified logging interface for the power
// calculator, backed by zerolog. Console output serves the terminal and JSON
// lines serve log files.
package logging

//go:generate mockgen -destination=mocks/mock_logger.go -package=mocks github.com/agbru/powmod/internal/logging Logger
