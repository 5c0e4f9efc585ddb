package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/EkalavyanS/Flashy/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update flashy to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		if check, _ := cmd.Flags().GetBool("check"); check {
			result, err := checker.Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
			if err != nil {
				return err
			}
			if !result.UpdateAvailable {
				fmt.Printf("flashy %s is up to date (latest release: %s).\n", version, result.LatestVersion)
				return nil
			}
			fmt.Printf("flashy %s is available: %s\n", result.LatestVersion, result.ReleaseURL)
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		target, _ := cmd.Flags().GetString("to")
		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Println("Already running the latest version.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrNoAsset) {
			return fmt.Errorf("%w\n\nDownload a build manually from https://github.com/EkalavyanS/Flashy/releases", err)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo flashy update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest, e.g. v1.2.0")
}
