// Package audio turns extracted track metadata into things a music player
// understands: ID3 tags on a local MP3 and playlists over stream URLs.
//
// # ID3 Tagging
//
// The tagger writes into a file the user already has; it never fetches audio:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags("song.mp3", meta, artworkBytes)
//
// Frames written: artist, title, year and date, genre (page category),
// copyright (license), comment (description) and the front cover.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("Late Night", tracks)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
