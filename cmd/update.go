package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/tikhub"

var updateDryRun bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update tikhub to the latest release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "only report whether an update is available")
}

// checkForUpdate finds the latest release and whether it is newer than the
// running build. Development builds always consider a release newer.
func checkForUpdate(ctx context.Context) (*selfupdate.Release, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	current, ok := currentVersion()
	if !ok {
		return latest, true, nil
	}
	newest, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return nil, false, fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}
	return latest, newest.GT(current), nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := currentVersion(); !ok && !updateDryRun {
		return errors.New("refusing to update a development build")
	}

	latest, newer, err := checkForUpdate(ctx)
	if err != nil {
		return err
	}
	if latest == nil {
		logger.Info().Str("repository", repositorySlug).Msg("No releases found")
		return nil
	}
	if !newer {
		logger.Info().Str("version", version).Msg("Already up to date")
		return nil
	}

	if updateDryRun {
		logger.Info().
			Str("current", version).
			Str("latest", latest.Version()).
			Msg("Update available")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("current", version).
		Str("latest", latest.Version()).
		Str("asset", latest.AssetName).
		Msg("Updating...")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Msg("Updated successfully")
	return nil
}
