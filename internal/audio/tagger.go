package audio

import (
	"github.com/bogem/id3v2"
	"github.com/cockroachdb/errors"

	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the track page.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Artist:     TagModify,      // uploader name
//	    TrackTitle: TagModify,      // track name
//	    Genre:      TagModify,      // first page tag
//	    Comments:   TagDoNotModify, // keep whatever the file has
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are touched.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// Date controls the TDRC (Recording time) frame (ID3v2.4).
	Date TagEditAction

	// Genre controls the TCON (Content type) frame, filled from the category.
	Genre TagEditAction

	// Copyright controls the TCOP (Copyright message) frame, filled from the license.
	Copyright TagEditAction

	// Comments controls the COMM (Comments) frame, filled from the description.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every frame is
// updated from the extracted metadata.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Artist:     TagModify,
		TrackTitle: TagModify,
		Year:       TagModify,
		Date:       TagModify,
		Genre:      TagModify,
		Copyright:  TagModify,
		Comments:   TagModify,
	}
}

// Tagger writes ID3 tags built from extracted track metadata into a local
// MP3 file that the user already has.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags("song.mp3", meta, artwork); err != nil {
//	    return err
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 frames from meta into the MP3 file at path.
//
// The file must exist. Existing frames not covered by the configuration are
// preserved. artwork, when non-nil, replaces any attached front cover.
func (t *Tagger) SaveTags(path string, meta *model.TrackMetadata, artwork []byte) error {
	if meta == nil {
		return errors.New("no metadata to write")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, meta)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return errors.Wrapf(err, "save tags to %s", path)
	}
	return nil
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, meta *model.TrackMetadata) {
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(meta.UploaderName)
	}

	switch t.config.TrackTitle {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(meta.Name)
	}

	// Year (TYER) - ID3v2.3
	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if meta.UploadDate != nil {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, meta.UploadDate.Format("2006"))
		}
	}

	// Date (TDRC) - ID3v2.4
	switch t.config.Date {
	case TagEmpty:
		tag.DeleteFrames("TDRC")
	case TagModify:
		if meta.UploadDate != nil {
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, meta.UploadDate.Format("2006-01-02"))
		}
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		if meta.Category != "" {
			tag.SetGenre(meta.Category)
		}
	}

	switch t.config.Copyright {
	case TagEmpty:
		tag.DeleteFrames("TCOP")
	case TagModify:
		if meta.License != "" {
			tag.AddTextFrame("TCOP", id3v2.EncodingUTF8, meta.License)
		}
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		if meta.Description.Content != "" {
			tag.DeleteFrames(tag.CommonID("Comments"))
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: meta.URL,
				Text:        meta.Description.Content,
			})
		}
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
