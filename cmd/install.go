package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/boomerverse/boomer/internal/service"
	"github.com/spf13/cobra"
)

var installAddr string

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:       "install <radio|lore|roulette>",
	Short:     "Install a service as a systemd user unit",
	ValidArgs: services,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Install a boomer service as a systemd user unit that starts on login.

This command will:
  - Generate a unit file running 'boomer serve <service>'
  - Install it to ~/.config/systemd/user/
  - Enable and start it with systemctl --user

The unit runs in the current directory, so a .env file here provides the
service's secrets.`,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installAddr, "addr", "", "Listen address passed to 'boomer serve'")
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Get the path to the current executable
	binaryPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual binary path
	binaryPath, err = filepath.EvalSymlinks(binaryPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	logPath, err := service.GetDefaultLogPath()
	if err != nil {
		return fmt.Errorf("failed to get log path: %w", err)
	}
	if err := os.MkdirAll(logPath, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	unit, err := service.GenerateUnit(service.UnitConfig{
		Service:          name,
		BinaryPath:       binaryPath,
		Addr:             installAddr,
		LogPath:          logPath,
		WorkingDirectory: workDir,
	})
	if err != nil {
		return fmt.Errorf("failed to generate unit: %w", err)
	}

	unitPath, err := service.GetUnitPath(name)
	if err != nil {
		return fmt.Errorf("failed to get unit path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(unitPath), 0755); err != nil {
		return fmt.Errorf("failed to create systemd user directory: %w", err)
	}

	if _, err := os.Stat(unitPath); err == nil {
		fmt.Println("Service is already installed. Replacing unit...")
	}

	if err := os.WriteFile(unitPath, []byte(unit), 0644); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}
	fmt.Printf("✓ Installed unit to %s\n", unitPath)

	if err := systemctl("daemon-reload"); err != nil {
		return err
	}
	if err := systemctl("enable", "--now", service.UnitName(name)); err != nil {
		return err
	}

	fmt.Println("✓ Service enabled and started")
	fmt.Printf("✓ Logs will be written to %s\n", filepath.Join(logPath, name+".log"))
	fmt.Println("\nYou can check the service status with:")
	fmt.Printf("  systemctl --user status %s\n", service.UnitName(name))
	fmt.Println("\nTo uninstall, run:")
	fmt.Printf("  boomer uninstall %s\n", name)

	return nil
}

// systemctl runs systemctl --user with args
func systemctl(args ...string) error {
	cmd := exec.Command("systemctl", append([]string{"--user"}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if out := strings.TrimSpace(string(output)); out != "" {
			return fmt.Errorf("systemctl %s failed: %s", strings.Join(args, " "), out)
		}
		return fmt.Errorf("failed to run systemctl %s: %w", strings.Join(args, " "), err)
	}
	return nil
}
