//go:build tools

package tools

// This file tracks CLI tools used during development.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: regenerates the *_mock_test.go files
//   (see the go:generate lines in the account and dispatch tests)
// - github.com/pressly/goose/v3/cmd/goose: applies
//   internal/adapter/credstore/postgres/migrations by hand
