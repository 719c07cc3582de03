package reddit

import "strings"

// MediaKind identifies the media shape of a submission.
type MediaKind string

const (
	KindSelfPost MediaKind = "self"
	KindVideo    MediaKind = "video"
	KindGif      MediaKind = "gif"
	KindImage    MediaKind = "image"
	KindGallery  MediaKind = "gallery"
)

// GalleryItem is one image of a gallery submission, in display order.
type GalleryItem struct {
	MediaID    string
	PreviewURL string
}

// Post is the read-only view of a resolved submission. It exists for the
// duration of one pipeline run.
type Post struct {
	ID               string
	Permalink        string
	URL              string
	IsSelf           bool
	IsVideo          bool
	FallbackVideoURL string
	GalleryItems     []GalleryItem
}

// Classify decides the media shape of a post. The rules overlap, so order
// matters: a video post with a ".gif" URL is still a video, and a gif inside
// a gallery URL is still a gif.
func Classify(p *Post) MediaKind {
	switch {
	case p.IsSelf:
		return KindSelfPost
	case p.IsVideo:
		return KindVideo
	case strings.Contains(p.URL, ".gif"):
		return KindGif
	case !strings.Contains(p.URL, "/gallery/"):
		return KindImage
	default:
		return KindGallery
	}
}
