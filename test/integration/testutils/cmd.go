package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
)

// Binary runs a CLI binary for the integration tests.
type Binary struct {
	Path string
	// Env is added on top of the process environment, later keys win.
	Env []string
}

// Run executes the binary with a whitespace separated argument line. Use RunArgs
// when an argument has spaces, like a task name.
func (b Binary) Run(ctx context.Context, argLine string) (stdout, stderr []byte, err error) {
	return b.RunArgs(ctx, strings.Fields(argLine)...)
}

// RunArgs executes the binary with the arguments as they are.
func (b Binary) RunArgs(ctx context.Context, args ...string) (stdout, stderr []byte, err error) {
	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, b.Path, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	cmd.Env = append(os.Environ(), b.Env...)

	err = cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}

// Fourd returns the fourd binary with logging disabled so stdout only has the command output.
func Fourd(path string) Binary {
	return Binary{Path: path, Env: []string{"FOURD_NO_LOG=true"}}
}
