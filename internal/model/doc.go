// Package model defines the core data structures used throughout
// the bandcamp-track-extractor application.
//
// # TrackMetadata
//
// TrackMetadata is the record produced for one Bandcamp track page:
//
//	meta, _ := track.Metadata()
//	fmt.Println(meta.Name, meta.StreamURL())
//
// # Streams
//
// AudioStream and VideoStream describe playable sources. A Bandcamp track
// exposes exactly one MP3 audio stream and no video streams.
//
// # File Naming
//
// FileNameConfig controls where a metadata record is written using placeholders:
//
//	path := meta.FilePath("/tmp/meta", &model.FileNameConfig{Format: "{artist} - {title}.yaml"})
//
// Available placeholders: {artist}, {title}, {year}, {month}, {day}
package model
