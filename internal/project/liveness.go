package project

import (
	"os/exec"

	"github.com/simonhull/firebird-suite/fledge/input"
	"github.com/simonhull/firebird-suite/fledge/output"
)

// ideProcessName maps an IDE to the process name to check before overwriting
// its project files. IntelliJ tolerates regeneration while open, so only
// Xcode is listed.
var ideProcessName = map[IDE]string{
	Xcode: "Xcode",
}

// EnsureIDEClosed warns when the target IDE is running and asks the user
// whether to continue. It never fails the generation: a declined prompt
// returns false, and environments without pgrep proceed silently.
func EnsureIDEClosed(ide IDE, prompt bool) bool {
	name, ok := ideProcessName[ide]
	if !ok {
		return true
	}
	if err := exec.Command("pgrep", "-x", name).Run(); err != nil {
		// Not running, or pgrep unavailable.
		return true
	}

	output.Info(name + " appears to be running. Generated files may be overwritten underneath it.")
	if !prompt {
		return true
	}
	return input.Confirm("Continue anyway?", false)
}
