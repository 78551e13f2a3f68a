// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func strPtr(s string) *string { return &s }

func TestVideoEmbedURL(t *testing.T) {
	tests := []struct {
		name      string
		mediaType MediaType
		video     *string
		want      string
	}{
		{
			name:      "youtube watch link",
			mediaType: MediaTypeVideo,
			video:     strPtr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			want:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:      "youtube short link",
			mediaType: MediaTypeVideo,
			video:     strPtr("https://youtu.be/dQw4w9WgXcQ"),
			want:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:      "vimeo link",
			mediaType: MediaTypeVideo,
			video:     strPtr("https://vimeo.com/76979871"),
			want:      "https://player.vimeo.com/video/76979871",
		},
		{
			name:      "unknown host",
			mediaType: MediaTypeVideo,
			video:     strPtr("https://example.com/video.mp4"),
			want:      "",
		},
		{
			name:      "image article ignores video url",
			mediaType: MediaTypeImage,
			video:     strPtr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			want:      "",
		},
		{
			name:      "video type without url",
			mediaType: MediaTypeVideo,
			video:     nil,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Article{MediaType: tt.mediaType, FeaturedVideo: tt.video}
			if got := a.VideoEmbedURL(); got != tt.want {
				t.Errorf("VideoEmbedURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasVideo(t *testing.T) {
	a := Article{MediaType: MediaTypeVideo, FeaturedVideo: strPtr("https://vimeo.com/1")}
	if !a.HasVideo() {
		t.Errorf("video article with url should report HasVideo")
	}
	if (Article{MediaType: MediaTypeVideo}).HasVideo() {
		t.Errorf("video article without url should not report HasVideo")
	}
	if (Article{MediaType: MediaTypeImage, FeaturedVideo: strPtr("https://vimeo.com/1")}).HasVideo() {
		t.Errorf("image article should not report HasVideo")
	}
}
