package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/velora/tripkit"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	dbPath      string
	overlayPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripkit",
		Short: "Single-trip travel itinerary engine",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", tripkit.EnvOr("TRIP_DATABASE_PATH", "data/trip.db"), "trip database path")
	rootCmd.PersistentFlags().StringVar(&overlayPath, "overlay", tripkit.EnvOr("TRIP_OVERLAY_PATH", "data/overlay"), "viewer overlay directory")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(daysCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(shareURLCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func config() tripkit.Config {
	return tripkit.Config{
		Name:            tripkit.EnvOr("TRIP_NAME", "Trip"),
		URL:             tripkit.EnvOr("TRIP_URL", "http://localhost:3000"),
		Addr:            tripkit.EnvOr("TRIP_ADDR", ":3000"),
		DatabasePath:    dbPath,
		OverlayPath:     overlayPath,
		SessionSecret:   os.Getenv("TRIP_SESSION_SECRET"),
		CookieSecure:    strings.EqualFold(os.Getenv("TRIP_COOKIE_SECURE"), "true"),
		ActivityEnabled: strings.EqualFold(os.Getenv("TRIP_ACTIVITY"), "true"),
	}
}

// app opens the engine without starting the server, for offline
// commands.
func app() (*tripkit.App, error) {
	a := tripkit.New(config())
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the trip server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config()
			if cfg.SessionSecret == "" {
				cfg.SessionSecret = tripkit.MustEnv("TRIP_SESSION_SECRET")
			}
			a := tripkit.New(cfg)
			defer a.Close()
			return a.Start()
		},
	}
}

func newCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a fresh trip, replacing the current document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if start == "" {
				start = time.Now().Format("2006-01-02")
			}
			if end == "" {
				end = start
			}

			a, err := app()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := tripkit.NewTrip(title, start, end)
			if err != nil {
				return err
			}
			if err := a.Trips.Commit(t); err != nil {
				return err
			}
			if err := a.Overlays.ClearAll(); err != nil {
				return err
			}

			color.Green("Created trip %q (%s – %s, %d days)", t.Title, t.StartDate, t.EndDate, len(t.Days))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, default start)")
	return cmd
}

func daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the trip's day sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.Trips.Get()
			if err != nil {
				return fmt.Errorf("no trip yet; run 'tripkit new' first")
			}

			table := uitable.New()
			table.MaxColWidth = 50
			table.AddRow("#", "DATE", "WEEKDAY", "TITLE", "ITEMS")
			for i, d := range t.Days {
				table.AddRow(i+1, d.Date, d.Weekday, d.HeroTitle, len(d.Items))
			}
			fmt.Println(table)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the trip document as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.Trips.Get()
			if err != nil {
				return fmt.Errorf("no trip to export")
			}
			data, filename, err := tripkit.ExportTrip(t)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				filename = args[0]
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return err
			}
			color.Green("Exported %q to %s", t.Title, filename)
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the trip document from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := tripkit.ParseImport(data)
			if err != nil {
				color.Red("Import rejected: %v", err)
				return fmt.Errorf("existing trip untouched")
			}

			a, err := app()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Trips.Replace(t); err != nil {
				return err
			}
			color.Green("Imported trip %q (%d days)", t.Title, len(t.Days))
			return nil
		},
	}
}

func shareURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share-url",
		Short: "Print the viewer share link",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(tripkit.ShareURL(config().URL))
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tripkit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tripkit %s\n", version)
		},
	}
}
