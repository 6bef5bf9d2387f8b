package version

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/dendrascience/valheim-save-tools/save"
)

var (
	// These will be set by build flags or default to development values
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information and the newest archive format
// versions the build can read.
type Info struct {
	Version string         `json:"version"`
	Commit  string         `json:"commit"`
	Date    string         `json:"date"`
	Package string         `json:"package"`
	Formats map[string]int `json:"formats"`
}

// buildSetting returns a vcs setting recorded by the go tool, or fallback.
func buildSetting(key, fallback string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == key {
				return setting.Value
			}
		}
	}
	return fallback
}

// GetVersion returns the version string, preferring compile-time version if available
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetCommit returns the git commit hash, preferring compile-time commit if available
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	return buildSetting("vcs.revision", "unknown")
}

// GetBuildDate returns the build date, preferring compile-time date if available
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}
	return buildSetting("vcs.time", "unknown")
}

// Formats returns the newest supported version of each archive record.
func Formats() map[string]int {
	return map[string]int{
		"world":      save.MaxWorldVersion,
		"character":  save.MaxCharacterVersion,
		"playerdata": save.MaxPlayerDataVersion,
		"inventory":  save.MaxInventoryVersion,
		"skills":     save.MaxSkillsVersion,
		"minimap":    save.MaxMinimapVersion,
	}
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: "valheim-save-tools",
		Formats: Formats(),
	}
}

// GetFullVersion returns a formatted version string with commit and date
func GetFullVersion() string {
	return fullVersion(GetInfo())
}

func fullVersion(info Info) string {
	if info.Commit != "unknown" && len(info.Commit) > 7 {
		shortCommit := info.Commit[:7]
		if info.Date != "unknown" {
			return fmt.Sprintf("%s (%s, built %s)", info.Version, shortCommit, info.Date)
		}
		return fmt.Sprintf("%s (%s)", info.Version, shortCommit)
	}
	return info.Version
}

// PrintVersion prints version information to stdout
func PrintVersion(appName string) {
	Fprint(os.Stdout, appName, GetInfo())
}

// Fprint writes info in the format PrintVersion uses.
func Fprint(w io.Writer, appName string, info Info) {
	fmt.Fprintf(w, "%s version %s\n", appName, fullVersion(info))
	fmt.Fprintf(w, "Package: %s\n", info.Package)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
	fmt.Fprintf(w, "Formats: world %d, character %d, player data %d, inventory %d, skills %d, minimap %d\n",
		info.Formats["world"], info.Formats["character"], info.Formats["playerdata"],
		info.Formats["inventory"], info.Formats["skills"], info.Formats["minimap"])
}
