package deps

import (
	"os"
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// CheckPython checks if the configured Python interpreter is installed and
// returns its status
func CheckPython(interpreter string) Status {
	if interpreter == "" {
		interpreter = "python3"
	}

	path, err := exec.LookPath(interpreter)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	cmd := exec.Command(path, "--version")
	output, err := cmd.Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}

// CheckTranscriptAPI checks if the youtube_transcript_api package is
// importable by the given interpreter
func CheckTranscriptAPI(interpreter string) Status {
	if interpreter == "" {
		interpreter = "python3"
	}

	path, err := exec.LookPath(interpreter)
	if err != nil {
		return Status{Installed: false}
	}

	cmd := exec.Command(path, "-c",
		"import youtube_transcript_api; print(getattr(youtube_transcript_api, '__version__', 'unknown'))")
	output, err := cmd.Output()
	if err != nil {
		return Status{Installed: false, Path: path}
	}

	return Status{
		Installed: true,
		Path:      path,
		Version:   strings.TrimSpace(string(output)),
	}
}

// CheckScript checks that the fetch helper script exists on disk
func CheckScript(scriptPath string) Status {
	info, err := os.Stat(scriptPath)
	if err != nil || info.IsDir() {
		return Status{Installed: false}
	}
	return Status{Installed: true, Path: scriptPath}
}
