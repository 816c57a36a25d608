//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var storefrontBinary string

// bakeryConfig and bakeryMenu are a small second shop, exposed to scripts as
// $BAKERY, so scripts can run against a custom catalog and currency.
const bakeryConfig = `version: "1"
catalog: menu.yaml
currency: "₽"
pageSize: 2
`

const bakeryMenu = `version: "1"
categories:
  - id: 0
    name: "Все"
  - id: 1
    name: "Выпечка"
products:
  - id: "s1"
    name: "САМСА"
    category: 1
    price: 90
  - id: "s2"
    name: "ХАЧАПУРИ"
    category: 1
    price: 240
  - id: "s3"
    name: "ЧУДУ"
    category: 1
    price: 150
`

var frameHeader = regexp.MustCompile(`(?m)^== .+ == #`)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "storefront-e2e-*")
	if err != nil {
		panic(err)
	}

	storefrontBinary = filepath.Join(tmpDir, "storefront")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", storefrontBinary, "./cmd/storefront")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build storefront binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"frames": cmdFrames,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(storefrontBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	bakeryDir := filepath.Join(env.WorkDir, "bakery")
	if err := os.MkdirAll(bakeryDir, 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(bakeryDir, "storefront.yaml"), []byte(bakeryConfig), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(bakeryDir, "menu.yaml"), []byte(bakeryMenu), 0o600); err != nil {
		return err
	}
	env.Setenv("BAKERY", filepath.Join(bakeryDir, "storefront.yaml"))

	return nil
}

// cmdFrames checks how many screens the last command printed.
// Usage: frames N
func cmdFrames(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: frames N")
	}
	want, err := strconv.Atoi(args[0])
	ts.Check(err)

	got := len(frameHeader.FindAllString(ts.ReadFile("stdout"), -1))
	if neg && got == want {
		ts.Fatalf("stdout has %d screens, want any other count", got)
	}
	if !neg && got != want {
		ts.Fatalf("stdout has %d screens, want %d", got, want)
	}
}
