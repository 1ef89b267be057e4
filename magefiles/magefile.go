//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the gentry project using Mage.
//
// Usage:
//
//	mage build          Compile gentry binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests except the CLI package
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Write a coverage profile to bin/coverage.out
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install gentry to GOPATH/bin
package main

const (
	binGo      = "go"
	binaryName = "gentry"
	binaryDir  = "bin"
	cmdDir     = "./cmd/gentry"

	// versionVar is overridden at link time by Build.
	versionVar = "github.com/mesh-intelligence/gentry/internal/cli.Version"
)
