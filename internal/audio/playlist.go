package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// Extension returns the conventional file extension for the format,
// including the leading dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates playlists whose entries point at the audio
// sources of extracted tracks.
//
// Tracks without an audio source are left out.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist("Late Night", tracks)
//	os.WriteFile("late-night.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// https://t4.bcbits.com/stream/.../mp3-128/...
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects FormatM3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content titled title for tracks,
// in the given order.
func (p *PlaylistCreator) CreatePlaylist(title string, tracks []*model.TrackMetadata) string {
	entries := playable(tracks)

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(title, entries)
	case FormatZPL:
		return p.createZPL(title, entries)
	default:
		return p.createM3U(entries)
	}
}

func playable(tracks []*model.TrackMetadata) []*model.TrackMetadata {
	out := make([]*model.TrackMetadata, 0, len(tracks))
	for _, t := range tracks {
		if t != nil && t.StreamURL() != "" {
			out = append(out, t)
		}
	}
	return out
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	https://...
func (p *PlaylistCreator) createM3U(tracks []*model.TrackMetadata) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", int(track.Duration), track.UploaderName, track.Name)
		}
		sb.WriteString(track.StreamURL() + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=https://...
//	Title1=Artist - Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(tracks []*model.TrackMetadata) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range tracks {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, track.StreamURL())
		fmt.Fprintf(&sb, "Title%d=%s - %s\n", idx, track.UploaderName, track.Name)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, lengthSeconds(track))
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(tracks))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// lengthSeconds returns -1 for unknown lengths, as PLS readers expect.
func lengthSeconds(track *model.TrackMetadata) int {
	if track.Duration <= 0 {
		return -1
	}
	return int(track.Duration)
}

func (p *PlaylistCreator) createWPL(title string, tracks []*model.TrackMetadata) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(track.StreamURL()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL is WPL plus per-entry title, artist and duration attributes.
func (p *PlaylistCreator) createZPL(title string, tracks []*model.TrackMetadata) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(title))
	sb.WriteString("    <meta name=\"Generator\" content=\"bandcamp-track\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(tracks))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(track.StreamURL()),
			escapeXML(track.Name),
			escapeXML(track.UploaderName),
			int64(track.Duration*1000))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
