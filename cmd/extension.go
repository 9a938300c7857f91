package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// RunExtension attempts to find and execute an external finlit-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "finlit-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes the resolved global flags to an extension.
func extensionEnv() []string {
	cfg, err := LoadConfig()
	if err != nil {
		// the extension may not need the configuration
		log.Printf("warning: %v", err)
		cfg = nil
	}
	return []string{
		EnvLedgerFile + "=" + LedgerPath(cfg),
		EnvConfigFile + "=" + ConfigPath(),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
