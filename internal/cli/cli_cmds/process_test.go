package cli_cmds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kestrelpay/kestrel-go/internal"
	"github.com/kestrelpay/kestrel-go/internal/cli"
)

const sampleStream = "type, client, tx, amount\n" +
	"deposit, 1, 1, 1.0\n" +
	"deposit, 2, 2, 2.0\n" +
	"deposit, 1, 3, 2.0\n" +
	"withdrawal, 1, 4, 1.5\n" +
	"withdrawal, 2, 5, 3.0\n"

const sampleSnapshot = "client,available,held,total,locked\n" +
	"1,1.5000,0.0,1.5000,false\n" +
	"2,2.0000,0.0,2.0000,false\n"

func newTestRoot(t *testing.T) *cli.RootCMD {
	t.Helper()

	logger, err := internal.NewLogger(t.TempDir(), internal.LogLevelInfo, internal.AllComponents())
	if err != nil {
		t.Fatalf("NewLogger() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	params := &cli.CmdParams{
		Config: &internal.Config{},
		Logger: logger,
		Use:    "kestrel",
		Short:  "Kestrel Payments Engine",
	}
	params.Palette = GeneratePalette(params)

	return cli.NewRootCMD(params)
}

func TestProcessWritesSnapshotToStdout(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(input, []byte(sampleStream), 0o644); err != nil {
		t.Fatalf("writing input file: %v", err)
	}

	root := newTestRoot(t)
	output, err := cli.ExecuteCommand(root.Root, "process", input)
	if err != nil {
		t.Fatalf("process returned unexpected error: %v", err)
	}

	if output != sampleSnapshot {
		t.Errorf("process output:\n%s\nwant:\n%s", output, sampleSnapshot)
	}
}

func TestProcessWritesSnapshotToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transactions.csv")
	outputFile := filepath.Join(dir, "accounts.csv")
	if err := os.WriteFile(input, []byte(sampleStream), 0o644); err != nil {
		t.Fatalf("writing input file: %v", err)
	}

	root := newTestRoot(t)
	stdout, err := cli.ExecuteCommand(root.Root, "process", input, "--output", outputFile)
	if err != nil {
		t.Fatalf("process returned unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout when writing to a file, got %q", stdout)
	}

	written, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if string(written) != sampleSnapshot {
		t.Errorf("snapshot file:\n%s\nwant:\n%s", written, sampleSnapshot)
	}
}

func TestProcessDisputeLifecycle(t *testing.T) {
	stream := "type, client, tx, amount\n" +
		"deposit, 1, 1, 3.0\n" +
		"deposit, 1, 2, 10.0\n" +
		"dispute, 1, 2,\n" +
		"withdrawal, 1, 3, 5.0\n" +
		"resolve, 1, 2,\n" +
		"withdrawal, 1, 4, 10.0\n" +
		"dispute, 1, 1,\n" +
		"chargeback, 1, 1,\n" +
		"deposit, 1, 5, 1.0\n"

	dir := t.TempDir()
	input := filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(input, []byte(stream), 0o644); err != nil {
		t.Fatalf("writing input file: %v", err)
	}

	root := newTestRoot(t)
	output, err := cli.ExecuteCommand(root.Root, "process", input)
	if err != nil {
		t.Fatalf("process returned unexpected error: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,0.0,0.0,0.0,true\n"
	if output != want {
		t.Errorf("process output:\n%s\nwant:\n%s", output, want)
	}
}

func TestProcessMissingInputFileFails(t *testing.T) {
	root := newTestRoot(t)
	_, err := cli.ExecuteCommand(root.Root, "process", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
	if !strings.Contains(err.Error(), "opening input") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestProcessRequiresInputArgument(t *testing.T) {
	root := newTestRoot(t)
	if _, err := cli.ExecuteCommand(root.Root, "process"); err == nil {
		t.Fatal("expected an argument error when no input file is given")
	}
}

func TestVersionCommand(t *testing.T) {
	root := newTestRoot(t)
	output, err := cli.ExecuteCommand(root.Root, "version")
	if err != nil {
		t.Fatalf("version returned unexpected error: %v", err)
	}
	if !strings.Contains(output, "Kestrel Payments Engine") {
		t.Errorf("unexpected version output: %q", output)
	}
}
