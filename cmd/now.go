package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/boomerverse/boomer/internal/config"
	"github.com/boomerverse/boomer/pkg/radioking"
	"github.com/spf13/cobra"
)

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Display the track playing on Boomer FM",
	Long: `Query the RadioKing widget API and display the track on air.

The output format can be customized in ~/.config/boomer/config.yaml
using a Go template. Available fields: .Title, .Artist, .Album, .Duration, .URL

Exit codes:
  0 - A track is on air
  1 - Nothing on air or the station could not be reached`,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	// Add format flag to override config
	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
	// Add marquee flag to enable scrolling
	nowCmd.Flags().Bool("marquee", false, "Enable marquee scrolling for long text (overrides config)")
}

func runNow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	client, err := radioking.NewClient(radioking.Config{
		Slug:    cfg.Radio.Slug,
		BaseURL: cfg.Radio.APIBase,
	})
	if err != nil {
		return fmt.Errorf("failed to create radioking client: %w", err)
	}

	// Get current track
	track, err := client.Current(ctx)
	if errors.Is(err, radioking.ErrNoTrack) {
		// Nothing on air, exit with code 1
		os.Exit(1)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}

	// Format and print output
	output, err := formatTrack(track, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Apply width padding/marquee if requested
	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = cfg.OutputWidth
	}

	marquee, _ := cmd.Flags().GetBool("marquee")
	if !marquee && !cmd.Flags().Changed("marquee") {
		// Flag not set, use config default
		marquee = cfg.MarqueeEnabled
	}

	if width > 0 {
		if marquee {
			output = marqueeText(output, width, cfg.MarqueeSpeed, cfg.MarqueeSeparator, time.Now())
		} else {
			output = padToWidth(output, width)
		}
	}

	fmt.Println(output)
	return nil
}

// formatTrack applies the template to the track data
func formatTrack(track *radioking.Track, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}
