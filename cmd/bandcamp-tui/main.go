package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/handiism/bandcamp-track-extractor/internal/config"
	"github.com/handiism/bandcamp-track-extractor/internal/http"
	"github.com/handiism/bandcamp-track-extractor/internal/logger"
	"github.com/handiism/bandcamp-track-extractor/internal/tui"
)

var (
	app        = kingpin.New("bandcamp-tui", "Interactive Bandcamp track lookup")
	configPath = app.Flag("config", "Path to config file").Default("bandcamp.yaml").String()
	outputDir  = app.Flag("output-dir", "Directory for metadata files and playlists").Short('o').Default(".").String()
)

func main() {
	_ = godotenv.Load()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal; keep log lines off it.
	if settings.LogOutput == "stdout" || settings.LogOutput == "stderr" {
		settings.LogOutput = "discard"
	}
	if _, err := logger.Init(settings.ToLoggerConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	client, err := http.NewClientWithOptions(settings.ToHTTPOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(tui.Options{Settings: settings, Client: client, OutputDir: *outputDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
