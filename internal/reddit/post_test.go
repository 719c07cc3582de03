package reddit_test

import (
	"testing"

	"rtvk/internal/reddit"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		post reddit.Post
		want reddit.MediaKind
	}{
		{
			name: "self post wins over everything",
			post: reddit.Post{IsSelf: true, IsVideo: true, URL: "https://x/gallery/a.gif"},
			want: reddit.KindSelfPost,
		},
		{
			name: "video wins over gif and gallery url patterns",
			post: reddit.Post{IsVideo: true, URL: "https://x/gallery/a.gif"},
			want: reddit.KindVideo,
		},
		{
			name: "gif url inside gallery url is still a gif",
			post: reddit.Post{URL: "https://x/gallery/a.gif"},
			want: reddit.KindGif,
		},
		{
			name: "plain image url",
			post: reddit.Post{URL: "https://i.redd.it/a.jpg"},
			want: reddit.KindImage,
		},
		{
			name: "gallery url without gif",
			post: reddit.Post{URL: "https://www.reddit.com/gallery/abc"},
			want: reddit.KindGallery,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := reddit.Classify(&tc.post); got != tc.want {
				t.Errorf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGalleryImageURLs(t *testing.T) {
	post := &reddit.Post{
		ID: "abc",
		GalleryItems: []reddit.GalleryItem{
			{MediaID: "m1", PreviewURL: "https://x/preview/a.jpg?x=1"},
			{MediaID: "m2", PreviewURL: "https://x/preview/b.jpg?x=2"},
		},
	}
	urls, err := reddit.GalleryImageURLs(post)
	if err != nil {
		t.Fatalf("GalleryImageURLs: %v", err)
	}
	want := []string{"https://x/i/a.jpg", "https://x/i/b.jpg"}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d", len(urls), len(want))
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("url[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestGalleryImageURLRewrite(t *testing.T) {
	post := &reddit.Post{
		GalleryItems: []reddit.GalleryItem{
			{MediaID: "m", PreviewURL: "https://x/preview/abc.jpg?foo=bar"},
		},
	}
	urls, err := reddit.GalleryImageURLs(post)
	if err != nil {
		t.Fatalf("GalleryImageURLs: %v", err)
	}
	if urls[0] != "https://x/i/abc.jpg" {
		t.Errorf("rewrite = %q, want https://x/i/abc.jpg", urls[0])
	}
}

func TestGalleryImageURLsEmpty(t *testing.T) {
	if _, err := reddit.GalleryImageURLs(&reddit.Post{ID: "abc"}); err == nil {
		t.Fatal("expected error for post without gallery items")
	}
}
