package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"

	checkLatest bool
)

// SetVersion records the build metadata injected by the linker
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or token needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
}

// currentVersion parses the build version. Development builds have none.
func currentVersion() (semver.Version, bool) {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, false
	}
	return v, true
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("tikhub %s\n", version)
	fmt.Printf("  built:   %s\n", buildTime)
	fmt.Printf("  go:      %s\n", runtime.Version())
	fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if !checkLatest {
		return nil
	}

	latest, newer, err := checkForUpdate(cmd.Context())
	if err != nil {
		return err
	}
	if latest == nil {
		fmt.Println("\nNo releases found.")
		return nil
	}
	if newer {
		fmt.Printf("\nA newer release is available: %s (run 'tikhub update')\n", latest.Version())
	} else {
		fmt.Println("\nYou are running the latest release.")
	}
	return nil
}
