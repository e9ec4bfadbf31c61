//go:build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "transfer-pilot"
	mainPkg = "./cmd/transfer-pilot"
)

// Default target to run when none is specified
var Default = Build

// Build builds the transfer-pilot binary
func Build() error {
	fmt.Println("Building " + binary + "...")
	return sh.Run("go", "build", "-o", binary, mainPkg)
}

// Install installs transfer-pilot into GOBIN
func Install() error {
	fmt.Println("Installing " + binary + "...")
	return sh.Run("go", "install", mainPkg)
}

// Test runs the unit tests with the race detector and writes coverage.out
func Test() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-race", "-shuffle=on", "-coverprofile=coverage.out", "./...")
}

// Integration runs the end-to-end transfer tests against the real filesystem
func Integration() error {
	fmt.Println("Running integration tests...")
	return run(context.Background(), "go", "test", "-tags=integration", "-count=1", "./tests/...")
}

// Lint lints the codebase
func Lint() error {
	fmt.Println("Linting...")
	return run(context.Background(), "golangci-lint", "run", "./...")
}

// Fmt formats the code
func Fmt() error {
	fmt.Println("Formatting code...")
	if err := sh.Run("gofmt", "-s", "-w", "."); err != nil {
		return err
	}
	return sh.Run("goimports", "-w", ".")
}

// Check formats, then lints and runs every test suite
func Check() {
	mg.Deps(Fmt)
	mg.SerialDeps(Lint, Test, Integration)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	for _, artifact := range []string{binary, "coverage.out", "coverage.html"} {
		if err := sh.Rm(artifact); err != nil {
			return err
		}
	}
	return nil
}

// Coverage renders coverage.out as HTML
func Coverage() error {
	mg.Deps(Test)
	fmt.Println("Generating coverage report...")
	return sh.Run("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
