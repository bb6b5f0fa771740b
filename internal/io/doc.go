// Package ioutils writes extracted metadata to disk and prepares cover art
// for embedding.
//
// # Metadata Files
//
//	data, err := ioutils.EncodeMetadata(meta, ioutils.FormatYAML)
//	err = ioutils.WriteMetadata(ctx, "/out/Artist - Song.yaml", meta, ioutils.FormatYAML)
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 500x500
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils
