package cmd

import (
	"fmt"
	"os"

	"github.com/boomerverse/boomer/internal/service"
	"github.com/spf13/cobra"
)

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:       "uninstall <radio|lore|roulette>",
	Short:     "Remove a service's systemd user unit",
	ValidArgs: services,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Stop a boomer service and remove its systemd user unit.

This command will:
  - Stop and disable the unit (if running)
  - Remove the unit file from ~/.config/systemd/user/
  - Reload the systemd user manager`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		unitPath, err := service.GetUnitPath(name)
		if err != nil {
			return fmt.Errorf("failed to get unit path: %w", err)
		}

		if _, err := os.Stat(unitPath); os.IsNotExist(err) {
			fmt.Printf("Service %s is not installed (unit not found)\n", name)
			return nil
		}

		fmt.Println("Stopping service...")
		if err := systemctl("disable", "--now", service.UnitName(name)); err != nil {
			fmt.Printf("Warning: failed to stop service: %v\n", err)
			fmt.Println("Continuing with unit removal...")
		} else {
			fmt.Println("✓ Service stopped")
		}

		if err := os.Remove(unitPath); err != nil {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}
		fmt.Printf("✓ Removed unit from %s\n", unitPath)

		if err := systemctl("daemon-reload"); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}

		fmt.Printf("\nThe %s service has been uninstalled successfully.\n", name)
		fmt.Println("\nTo reinstall, run:")
		fmt.Printf("  boomer install %s\n", name)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
