package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const appURL = "https://github.com/babarot/trash"

// Version is filled from ldflags in main
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

func isUnset(s string) bool {
	switch s {
	case "", "unset", "unknown", "develop":
		return true
	}
	return false
}

// fromBuildInfo fills unset fields from the module and VCS data the go
// command embeds in `go install` builds
func (v Version) fromBuildInfo(info *debug.BuildInfo) Version {
	if isUnset(v.Version) {
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && isUnset(v.Revision):
			v.Revision = s.Value
		case s.Key == "vcs.time" && isUnset(v.BuildDate):
			v.BuildDate = s.Value
		}
	}
	return v
}

// backend names the trash store this binary drives
func backend(goos string) string {
	switch goos {
	case "windows":
		return "Recycle Bin (shell)"
	case "darwin":
		return "Finder (remove only)"
	default:
		return "freedesktop.org trash"
	}
}

func (v Version) Print() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		v = v.fromBuildInfo(info)
	}
	var s strings.Builder
	fmt.Fprintf(&s, "%s - move files to the trash of your OS\n%s\n\n", v.AppName, appURL)
	v.writeTable(&s, runtime.GOOS, runtime.GOARCH)
	return s.String()
}

func (v Version) writeTable(w io.Writer, goos, goarch string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk([][]string{
		{"version:", v.Version},
		{"revision:", v.Revision},
		{"buildDate:", v.BuildDate},
		{"platform:", goos + "/" + goarch},
		{"trash:", backend(goos)},
	})
	table.Render()
}
