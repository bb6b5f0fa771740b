// Package main provides the bandcamp-track command line entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/handiism/bandcamp-track-extractor/internal/audio"
	"github.com/handiism/bandcamp-track-extractor/internal/config"
	"github.com/handiism/bandcamp-track-extractor/internal/http"
	ioutils "github.com/handiism/bandcamp-track-extractor/internal/io"
	"github.com/handiism/bandcamp-track-extractor/internal/logger"
	"github.com/handiism/bandcamp-track-extractor/internal/lookup"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

var errSomeFailed = errors.New("some lookups failed")

var (
	app        = kingpin.New("bandcamp-track", "Extract metadata from Bandcamp track pages")
	configPath = app.Flag("config", "Path to config file").Default("bandcamp.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// info command
	infoCmd       = app.Command("info", "Print track metadata").Default()
	infoFormat    = infoCmd.Flag("format", "Output format").Short('f').Enum(ioutils.FormatYAML, ioutils.FormatJSON)
	infoOutputDir = infoCmd.Flag("output-dir", "Write one metadata file per track into this directory").Short('o').String()
	infoURLs      = infoCmd.Arg("url", "Track page URL(s)").Required().Strings()

	// tag command
	tagCmd     = app.Command("tag", "Write ID3 tags from a track page into a local MP3")
	tagNoCover = tagCmd.Flag("no-cover", "Do not embed cover art").Bool()
	tagURL     = tagCmd.Arg("url", "Track page URL").Required().String()
	tagFile    = tagCmd.Arg("file", "MP3 file to tag").Required().ExistingFile()

	// playlist command
	playlistCmd    = app.Command("playlist", "Create a playlist of track streams")
	playlistOut    = playlistCmd.Flag("out", "Playlist file to write").Short('o').Required().String()
	playlistTitle  = playlistCmd.Flag("title", "Playlist title").Default("Bandcamp tracks").String()
	playlistFormat = playlistCmd.Flag("format", "Playlist format").Enum("m3u", "pls", "wpl", "zpl")
	playlistURLs   = playlistCmd.Arg("url", "Track page URL(s)").Required().Strings()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(settings)

	log, err := logger.Init(settings.ToLoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	if err := run(ctx, command, settings); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(130)
		}
		if !errors.Is(err, errSomeFailed) {
			log.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}

func applyFlags(settings *config.Settings) {
	if *verbose {
		settings.LogLevel = "debug"
	}
	if *logfile != "" {
		settings.LogOutput = "file"
		settings.LogFile = *logfile
	}
	if *infoFormat != "" {
		settings.OutputFormat = *infoFormat
	}
	if *playlistFormat != "" {
		settings.PlaylistFormat = *playlistFormat
	}
}

func run(ctx context.Context, command string, settings *config.Settings) error {
	client, err := http.NewClientWithOptions(settings.ToHTTPOptions())
	if err != nil {
		return err
	}
	manager := lookup.NewManager(settings, client, printProgress())

	switch command {
	case infoCmd.FullCommand():
		return info(ctx, manager, settings, *infoURLs, *infoOutputDir)
	case tagCmd.FullCommand():
		return tag(ctx, manager, *tagURL, *tagFile, !*tagNoCover)
	case playlistCmd.FullCommand():
		return playlist(ctx, manager, settings, *playlistURLs, *playlistOut, *playlistTitle)
	}
	return errors.Newf("unknown command %q", command)
}

// printProgress reports lookup progress on stderr so stdout stays parseable.
func printProgress() func(lookup.ProgressEvent) {
	debug := zerolog.GlobalLevel() <= zerolog.DebugLevel
	return func(event lookup.ProgressEvent) {
		if event.Level == lookup.LevelVerbose && !debug {
			return
		}

		prefix := "   "
		switch event.Level {
		case lookup.LevelError:
			prefix = "✗  "
		case lookup.LevelWarning:
			prefix = "!  "
		case lookup.LevelSuccess:
			prefix = "✓  "
		case lookup.LevelInfo:
			prefix = "›  "
		}
		fmt.Fprintln(os.Stderr, prefix+event.Message)
	}
}

// lookupAll runs the lookup and reports failures. It returns the tracks
// that succeeded, plus errSomeFailed when any did not.
func lookupAll(ctx context.Context, manager *lookup.Manager, urls []string) ([]*model.TrackMetadata, error) {
	results, err := manager.Lookup(ctx, urls)
	if err != nil {
		return nil, err
	}

	tracks := lookup.Succeeded(results)
	if len(tracks) < len(results) {
		return tracks, errSomeFailed
	}
	return tracks, nil
}

func info(ctx context.Context, manager *lookup.Manager, settings *config.Settings, urls []string, outputDir string) error {
	tracks, lookupErr := lookupAll(ctx, manager, urls)
	if lookupErr != nil && !errors.Is(lookupErr, errSomeFailed) {
		return lookupErr
	}

	for i, meta := range tracks {
		if outputDir != "" {
			path := meta.FilePath(outputDir, settings.ToFileNameConfig())
			if err := ioutils.WriteMetadata(ctx, path, meta, settings.OutputFormat); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
			continue
		}

		if err := printMetadata(os.Stdout, meta, settings.OutputFormat, i == 0); err != nil {
			return err
		}
	}

	return lookupErr
}

// printMetadata encodes meta to w. YAML documents after the first are
// preceded by a document separator.
func printMetadata(w io.Writer, meta *model.TrackMetadata, format string, first bool) error {
	data, err := ioutils.EncodeMetadata(meta, format)
	if err != nil {
		return err
	}
	if !first && format == ioutils.FormatYAML {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return errors.Wrap(err, "write metadata")
		}
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write metadata")
	}
	return nil
}

func tag(ctx context.Context, manager *lookup.Manager, pageURL, path string, withCover bool) error {
	tracks, err := lookupAll(ctx, manager, []string{pageURL})
	if err != nil {
		return err
	}
	meta := tracks[0]

	var artwork []byte
	if withCover {
		artwork, err = manager.Cover(ctx, meta)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("skipping cover art")
			artwork = nil
		}
	}

	if err := audio.NewTagger(audio.DefaultTagConfig()).SaveTags(path, meta, artwork); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Tagged %s as %s - %s\n", filepath.Base(path), meta.UploaderName, meta.Name)
	return nil
}

func playlist(ctx context.Context, manager *lookup.Manager, settings *config.Settings, urls []string, out, title string) error {
	tracks, lookupErr := lookupAll(ctx, manager, urls)
	if lookupErr != nil && !errors.Is(lookupErr, errSomeFailed) {
		return lookupErr
	}
	if len(tracks) == 0 {
		return errors.New("no track could be looked up")
	}

	creator := audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended)
	content := creator.CreatePlaylist(title, tracks)

	if dir := filepath.Dir(out); dir != "." {
		if err := ioutils.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := ioutils.WriteFile(ctx, out, []byte(content)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %s (%d tracks)\n", out, len(tracks))
	return lookupErr
}
