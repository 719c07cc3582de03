package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rtvk/internal/history"
	"rtvk/internal/logging"
	"rtvk/internal/media"
	"rtvk/internal/pipeline"
	"rtvk/internal/queue"
	"rtvk/internal/reddit"
)

type stubResolver struct {
	post *reddit.Post
	err  error
}

func (s *stubResolver) Resolve(context.Context, string) (*reddit.Post, error) {
	return s.post, s.err
}

type stubAssembler struct {
	asset *media.Asset
	err   error
	calls []string
}

func (s *stubAssembler) Assemble(_ context.Context, videoURL string) (*media.Asset, error) {
	s.calls = append(s.calls, videoURL)
	return s.asset, s.err
}

type stubUploader struct {
	videoRefs  map[string]string
	imageRefs  map[string]string
	gifRefs    map[string]string
	publishErr error

	postedMessage     string
	postedAttachments string
}

func (s *stubUploader) UploadVideo(_ context.Context, localPath string) (string, error) {
	ref, ok := s.videoRefs[localPath]
	if !ok {
		return "", fmt.Errorf("unexpected video upload of %s", localPath)
	}
	return ref, nil
}

func (s *stubUploader) UploadImage(_ context.Context, imageURL string) (string, error) {
	ref, ok := s.imageRefs[imageURL]
	if !ok {
		return "", fmt.Errorf("unexpected image upload of %s", imageURL)
	}
	return ref, nil
}

func (s *stubUploader) UploadGif(_ context.Context, gifURL string) (string, error) {
	ref, ok := s.gifRefs[gifURL]
	if !ok {
		return "", fmt.Errorf("unexpected gif upload of %s", gifURL)
	}
	return ref, nil
}

func (s *stubUploader) WallPost(_ context.Context, message, attachments string) (int64, error) {
	if s.publishErr != nil {
		return 0, s.publishErr
	}
	s.postedMessage = message
	s.postedAttachments = attachments
	return 77, nil
}

type stubHistorian struct {
	records []history.Record
	err     error
}

func (s *stubHistorian) Add(_ context.Context, rec history.Record) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.records = append(s.records, rec)
	return int64(len(s.records)), nil
}

func TestRunGalleryEndToEnd(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{
		ID:  "g1",
		URL: "https://www.reddit.com/gallery/g1",
		GalleryItems: []reddit.GalleryItem{
			{MediaID: "m1", PreviewURL: "https://x/preview/a.jpg?x=1"},
			{MediaID: "m2", PreviewURL: "https://x/preview/b.jpg?x=2"},
		},
	}}
	uploader := &stubUploader{imageRefs: map[string]string{
		"https://x/i/a.jpg": "photo1_10",
		"https://x/i/b.jpg": "photo1_11",
	}}
	historian := &stubHistorian{}

	p := pipeline.New(resolver, &stubAssembler{}, uploader, historian, "group", logging.NewNop())
	result, err := p.Run(context.Background(), queue.Entry{
		URL:   "https://redd.it/g1",
		Tags:  []string{"cats", "fun"},
		Title: "Hello",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Attachments != "photo1_10,photo1_11" {
		t.Errorf("attachments = %q, want photo1_10,photo1_11", result.Attachments)
	}
	if result.Message != "Hello\n\n#cats@group\n#fun@group" {
		t.Errorf("message = %q", result.Message)
	}
	if result.WallPostID != 77 {
		t.Errorf("wall post id = %d", result.WallPostID)
	}
	if uploader.postedAttachments != "photo1_10,photo1_11" {
		t.Errorf("posted attachments = %q", uploader.postedAttachments)
	}
	if len(historian.records) != 1 || historian.records[0].Attachments != "photo1_10,photo1_11" {
		t.Errorf("history records = %+v", historian.records)
	}
}

func TestRunVideoAssemblesAndUploads(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{
		ID:               "v1",
		URL:              "https://v.redd.it/v1",
		IsVideo:          true,
		FallbackVideoURL: "https://v.redd.it/v1/DASH_720.mp4",
	}}
	assembler := &stubAssembler{asset: &media.Asset{Path: "/tmp/rtvk_merged_x.mp4"}}
	uploader := &stubUploader{videoRefs: map[string]string{"/tmp/rtvk_merged_x.mp4": "video1_2"}}

	p := pipeline.New(resolver, assembler, uploader, nil, "", logging.NewNop())
	result, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/v1", Title: "T"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Attachments != "video1_2" {
		t.Errorf("attachments = %q, want video1_2", result.Attachments)
	}
	if len(assembler.calls) != 1 || assembler.calls[0] != "https://v.redd.it/v1/DASH_720.mp4" {
		t.Errorf("assembler calls = %v", assembler.calls)
	}
}

func TestRunGifPost(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{ID: "x", URL: "https://i.redd.it/a.gif"}}
	uploader := &stubUploader{gifRefs: map[string]string{"https://i.redd.it/a.gif": "doc1_3"}}

	p := pipeline.New(resolver, &stubAssembler{}, uploader, nil, "", logging.NewNop())
	result, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/x"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Attachments != "doc1_3" {
		t.Errorf("attachments = %q, want doc1_3", result.Attachments)
	}
}

func TestRunSelfPostUnsupported(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{ID: "s", IsSelf: true}}
	p := pipeline.New(resolver, &stubAssembler{}, &stubUploader{}, nil, "", logging.NewNop())

	_, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/s"})
	if !errors.Is(err, pipeline.ErrUnsupportedMedia) {
		t.Fatalf("Run = %v, want ErrUnsupportedMedia", err)
	}
}

func TestRunUnresolvablePost(t *testing.T) {
	resolver := &stubResolver{err: fmt.Errorf("wrapped: %w", reddit.ErrNotFound)}
	p := pipeline.New(resolver, &stubAssembler{}, &stubUploader{}, nil, "", logging.NewNop())

	_, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/missing"})
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("Run = %v, want ErrNotFound", err)
	}
}

func TestRunMuxFailure(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{
		ID: "v", IsVideo: true, URL: "https://v.redd.it/v",
		FallbackVideoURL: "https://v.redd.it/v/DASH_720.mp4",
	}}
	assembler := &stubAssembler{err: fmt.Errorf("mux streams: %w", media.ErrMux)}
	p := pipeline.New(resolver, assembler, &stubUploader{}, nil, "", logging.NewNop())

	_, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/v"})
	if !errors.Is(err, pipeline.ErrMux) {
		t.Fatalf("Run = %v, want ErrMux", err)
	}
}

func TestRunPublishFailure(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{ID: "i", URL: "https://i.redd.it/a.jpg"}}
	uploader := &stubUploader{
		imageRefs:  map[string]string{"https://i.redd.it/a.jpg": "photo1_10"},
		publishErr: errors.New("api rejected"),
	}
	p := pipeline.New(resolver, &stubAssembler{}, uploader, nil, "", logging.NewNop())

	_, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/i"})
	if !errors.Is(err, pipeline.ErrPublish) {
		t.Fatalf("Run = %v, want ErrPublish", err)
	}
}

func TestRunHistoryFailureIsNotFatal(t *testing.T) {
	resolver := &stubResolver{post: &reddit.Post{ID: "i", URL: "https://i.redd.it/a.jpg"}}
	uploader := &stubUploader{imageRefs: map[string]string{"https://i.redd.it/a.jpg": "photo1_10"}}
	historian := &stubHistorian{err: errors.New("disk full")}

	p := pipeline.New(resolver, &stubAssembler{}, uploader, historian, "", logging.NewNop())
	if _, err := p.Run(context.Background(), queue.Entry{URL: "https://redd.it/i"}); err != nil {
		t.Fatalf("Run should succeed despite history failure, got %v", err)
	}
}
