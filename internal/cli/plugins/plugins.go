// Package plugins provides exec-based plugin support for datefind.
// Plugins are separate binaries named datefind-<command> that are discovered
// and executed when an unknown command is invoked, the way kubectl and git
// plugins work.
package plugins

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "datefind-"

// KnownPlugins maps plugin commands to a short description and where to get
// them. Known plugins get a more helpful not-found message.
var KnownPlugins = map[string]string{}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

var userHomeDir = os.UserHomeDir

// Dir returns the per-user plugin directory, ~/.datefind/plugins.
func Dir() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datefind", "plugins"), nil
}

// FindPlugin searches for a plugin binary named datefind-<command>.
// It searches in the following locations in order:
//  1. Same directory as the datefind binary
//  2. ~/.datefind/plugins/
//  3. Anywhere in PATH
//
// Returns the full path to the plugin binary if found.
func FindPlugin(command string) (string, error) {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return "", ErrPluginNotFound
	}
	pluginName := Prefix + command

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if dir, err := Dir(); err == nil {
		candidate := filepath.Join(dir, pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(pluginName); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// Execute runs a plugin with the given arguments, connected to the process's
// standard streams, and returns the plugin's exit code.
func Execute(pluginPath string, args []string) int {
	return run(pluginPath, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(pluginPath string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := exec.Command(pluginPath, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing plugin: %v\n", err)
		return 1
	}

	return 0
}

// FormatNotFoundError returns a helpful error message when a plugin is not found.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"datefind\"\n", command)

	if info, ok := KnownPlugins[command]; ok {
		fmt.Fprintf(&sb, "\n%q is available as a plugin.\n", command)
		sb.WriteString(info)
		sb.WriteString("\n\nInstall the plugin binary as one of:\n")
	} else {
		sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	}

	fmt.Fprintf(&sb, "  - %s%s in the same directory as datefind\n", Prefix, command)
	fmt.Fprintf(&sb, "  - ~/.datefind/plugins/%s%s\n", Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)

	sb.WriteString("\nRun 'datefind --help' for usage.")

	return sb.String()
}

// isExecutable checks if a file exists and has an execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
