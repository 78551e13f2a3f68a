// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"mozaik/internal/imaging"
	"mozaik/internal/metrics"
	"mozaik/internal/middleware"
	"mozaik/internal/models"
	"mozaik/internal/render"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum admin thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory
	// bombs. 10000x10000 = 100 million pixels, ~400 MB decoded in
	// RGBA.
	maxImagePixels = 100_000_000
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// variantTypes are image types that get responsive WebP variants.
// GIF is excluded to preserve animation; SVG is vector.
var variantTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaLibrary renders the media library admin page.
func (a *Admin) MediaLibrary(w http.ResponseWriter, r *http.Request) {
	var items []models.Media
	if a.storageClient != nil && a.mediaStore != nil {
		var err error
		items, err = a.mediaStore.List(100, 0)
		if err != nil {
			slog.Error("list media failed", "error", err)
		}
		for i := range items {
			key := items[i].S3Key
			if items[i].ThumbS3Key != nil {
				key = *items[i].ThumbS3Key
			}
			items[i].URL = a.storageClient.FileURL(key)
		}
	}

	a.renderer.AdminPage(w, r, "media", &render.PageData{
		Title:   "Medijateka",
		Section: "media",
		Data:    map[string]any{"Media": items},
	})
}

// MediaUpload handles a multipart file upload: the original goes to S3
// as-is, image types additionally get a JPEG admin thumbnail and a set
// of responsive WebP variants.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		http.Error(w, "Object storage is not configured", http.StatusServiceUnavailable)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	contentType := detectContentType(fileBytes, header.Filename)
	if !allowedMediaTypes[contentType] {
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, fmt.Sprintf("File type %q is not allowed", contentType), http.StatusBadRequest)
		return
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	keyPrefix := fmt.Sprintf("media/%d/%02d/%s", now.Year(), now.Month(), fileID)
	s3Key := keyPrefix + ext

	ctx := r.Context()
	if err := a.storageClient.Upload(ctx, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, "Failed to upload file", http.StatusInternalServerError)
		return
	}

	// Admin thumbnail, best-effort.
	var thumbKey *string
	if variantTypes[contentType] {
		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := keyPrefix + "_thumb.jpg"
			if err := a.storageClient.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	media := &models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       a.storageClient.Bucket(),
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
		UploaderID:   sess.UserID,
	}

	created, err := a.mediaStore.Create(media)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		metrics.MediaUploads.WithLabelValues("error").Inc()
		http.Error(w, "Failed to save file metadata", http.StatusInternalServerError)
		return
	}

	if variantTypes[contentType] {
		a.generateMediaVariants(created, fileBytes, keyPrefix)
	}

	metrics.MediaUploads.WithLabelValues("success").Inc()
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// generateMediaVariants produces the responsive WebP renditions of an
// uploaded image and records them. Failures degrade silently; the
// public site falls back to the original file.
func (a *Admin) generateMediaVariants(m *models.Media, original []byte, keyPrefix string) {
	ctx := context.Background()

	processed, err := imaging.GenerateVariants(original, imaging.DefaultVariants)
	if err != nil {
		slog.Warn("variant generation failed", "error", err, "media", m.ID)
		return
	}

	for _, img := range processed {
		key := fmt.Sprintf("%s_%s.webp", keyPrefix, img.Name)
		if err := a.storageClient.Upload(ctx, key, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data))); err != nil {
			slog.Warn("variant upload failed", "error", err, "key", key)
			continue
		}
		v := &models.MediaVariant{
			MediaID:   m.ID,
			Name:      img.Name,
			Width:     img.Width,
			S3Key:     key,
			SizeBytes: int64(len(img.Data)),
		}
		if err := a.variantStore.Create(v); err != nil {
			slog.Warn("variant db insert failed", "error", err, "key", key)
		}
	}
}

// MediaUpdateAlt sets the alt text on a media item.
func (a *Admin) MediaUpdateAlt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	m, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if m == nil {
		http.NotFound(w, r)
		return
	}

	if err := a.mediaStore.UpdateAltText(id, strings.TrimSpace(r.FormValue("alt_text"))); err != nil {
		slog.Error("alt text update failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// MediaDelete removes a media item, its variants, and all its S3
// objects. S3 cleanup is best-effort and never fails the request.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	m, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if m == nil {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	variants, err := a.variantStore.ListByMedia(id)
	if err != nil {
		slog.Error("list variants failed", "id", id, "error", err)
	}

	if err := a.variantStore.DeleteByMedia(id); err != nil {
		slog.Error("variant db delete failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := a.mediaStore.Delete(id); err != nil {
		slog.Error("media db delete failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if a.storageClient != nil {
		if err := a.storageClient.Delete(ctx, m.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", m.S3Key)
		}
		if m.ThumbS3Key != nil {
			if err := a.storageClient.Delete(ctx, *m.ThumbS3Key); err != nil {
				slog.Warn("s3 thumbnail delete failed", "error", err, "key", *m.ThumbS3Key)
			}
		}
		for _, v := range variants {
			if err := a.storageClient.Delete(ctx, v.S3Key); err != nil {
				slog.Warn("s3 variant delete failed", "error", err, "key", v.S3Key)
			}
		}
	}

	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// detectContentType sniffs the MIME type from the file content.
// DetectContentType reports SVGs as XML or plain text, so the
// extension breaks the tie.
func detectContentType(data []byte, filename string) string {
	contentType := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		return "image/svg+xml"
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType
}

// generateThumbnail creates a JPEG thumbnail from an image,
// constrained to maxWidth while preserving aspect ratio. Returns nil
// if the image is already smaller than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	seeker, ok := src.(io.Seeker)
	if !ok {
		return nil, fmt.Errorf("source does not support seeking")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
