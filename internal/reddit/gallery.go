package reddit

import (
	"fmt"
	"strings"
)

// GalleryImageURLs returns the full-resolution image URL for every gallery
// item, in the gallery's declared display order. Each preview URL has its
// query string stripped and its "preview" path segment rewritten to "i",
// which is the host's full-resolution convention.
func GalleryImageURLs(p *Post) ([]string, error) {
	if len(p.GalleryItems) == 0 {
		return nil, fmt.Errorf("post %s has no gallery items", p.ID)
	}
	urls := make([]string, 0, len(p.GalleryItems))
	for _, item := range p.GalleryItems {
		if item.PreviewURL == "" {
			return nil, fmt.Errorf("gallery item %s has no preview url", item.MediaID)
		}
		urls = append(urls, fullResolutionURL(item.PreviewURL))
	}
	return urls, nil
}

func fullResolutionURL(previewURL string) string {
	if i := strings.IndexByte(previewURL, '?'); i >= 0 {
		previewURL = previewURL[:i]
	}
	return strings.Replace(previewURL, "preview", "i", 1)
}
