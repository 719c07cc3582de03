package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"rtvk/internal/history"
	"rtvk/internal/logging"
	"rtvk/internal/media"
	"rtvk/internal/queue"
	"rtvk/internal/reddit"
	"rtvk/internal/title"
)

// Resolver fetches a submission from the content API.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (*reddit.Post, error)
}

// Assembler turns a split video post into one local media file.
type Assembler interface {
	Assemble(ctx context.Context, videoURL string) (*media.Asset, error)
}

// Uploader re-hosts media on the destination and publishes the post.
type Uploader interface {
	UploadVideo(ctx context.Context, localPath string) (string, error)
	UploadImage(ctx context.Context, imageURL string) (string, error)
	UploadGif(ctx context.Context, gifURL string) (string, error)
	WallPost(ctx context.Context, message, attachments string) (int64, error)
}

// Historian records successful publishes. May be nil.
type Historian interface {
	Add(ctx context.Context, rec history.Record) (int64, error)
}

// Result reports what one successful run produced.
type Result struct {
	Kind        reddit.MediaKind
	Attachments string
	Message     string
	WallPostID  int64
}

// Pipeline orchestrates one repost run.
type Pipeline struct {
	resolver    Resolver
	assembler   Assembler
	uploader    Uploader
	historian   Historian
	groupHandle string
	logger      *slog.Logger
}

// New constructs a pipeline. historian may be nil to skip publish records.
func New(resolver Resolver, assembler Assembler, uploader Uploader, historian Historian, groupHandle string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver:    resolver,
		assembler:   assembler,
		uploader:    uploader,
		historian:   historian,
		groupHandle: groupHandle,
		logger:      logger,
	}
}

// Run processes one work item: resolve, classify, upload, publish.
func (p *Pipeline) Run(ctx context.Context, entry queue.Entry) (*Result, error) {
	log := p.logger.With(logging.FieldRunID, uuid.NewString())
	log.Info("run started", "url", entry.URL, "tags", strings.Join(entry.Tags, ","))

	post, err := p.resolver.Resolve(ctx, entry.URL)
	if err != nil {
		marker := ErrFetch
		if errors.Is(err, reddit.ErrNotFound) {
			marker = ErrNotFound
		}
		return nil, Wrap(marker, "resolve", "fetch post", entry.URL, err)
	}
	log.Info("post fetched", logging.FieldStage, "resolve", "post_id", post.ID)

	kind := reddit.Classify(post)
	log.Info("post classified", logging.FieldStage, "classify", "kind", string(kind))
	if kind == reddit.KindSelfPost {
		return nil, Wrap(ErrUnsupportedMedia, "classify", "inspect post", "self post has no media to extract", nil)
	}

	attachments, err := p.uploadMedia(ctx, log, post, kind)
	if err != nil {
		return nil, err
	}
	log.Info("media uploaded", logging.FieldStage, "upload", "attachments", attachments)

	message := title.Compose(entry.Title, entry.Tags, p.groupHandle)
	postID, err := p.uploader.WallPost(ctx, message, attachments)
	if err != nil {
		return nil, Wrap(ErrPublish, "publish", "wall post", attachments, err)
	}
	log.Info("published", logging.FieldStage, "publish", "wall_post_id", postID)

	p.recordHistory(ctx, log, entry, post, kind, attachments, postID)

	return &Result{
		Kind:        kind,
		Attachments: attachments,
		Message:     message,
		WallPostID:  postID,
	}, nil
}

func (p *Pipeline) uploadMedia(ctx context.Context, log *slog.Logger, post *reddit.Post, kind reddit.MediaKind) (string, error) {
	switch kind {
	case reddit.KindVideo:
		asset, err := p.assembler.Assemble(ctx, post.FallbackVideoURL)
		if err != nil {
			marker := ErrFetch
			if errors.Is(err, media.ErrMux) {
				marker = ErrMux
			}
			return "", Wrap(marker, "assemble", "build video file", post.FallbackVideoURL, err)
		}
		defer func() {
			if closeErr := asset.Close(); closeErr != nil {
				log.Warn("temp file cleanup failed", "error", closeErr)
			}
		}()
		ref, err := p.uploader.UploadVideo(ctx, asset.Path)
		if err != nil {
			return "", Wrap(ErrUpload, "upload", "video", asset.Path, err)
		}
		return ref, nil

	case reddit.KindGif:
		ref, err := p.uploader.UploadGif(ctx, post.URL)
		if err != nil {
			return "", Wrap(ErrUpload, "upload", "gif", post.URL, err)
		}
		return ref, nil

	case reddit.KindImage:
		ref, err := p.uploader.UploadImage(ctx, post.URL)
		if err != nil {
			return "", Wrap(ErrUpload, "upload", "image", post.URL, err)
		}
		return ref, nil

	case reddit.KindGallery:
		urls, err := reddit.GalleryImageURLs(post)
		if err != nil {
			return "", Wrap(ErrFetch, "upload", "resolve gallery", post.ID, err)
		}
		refs := make([]string, 0, len(urls))
		for _, imageURL := range urls {
			ref, err := p.uploader.UploadImage(ctx, imageURL)
			if err != nil {
				return "", Wrap(ErrUpload, "upload", "gallery image", imageURL, err)
			}
			refs = append(refs, ref)
		}
		return strings.Join(refs, ","), nil

	default:
		return "", Wrap(ErrUnsupportedMedia, "upload", "dispatch", string(kind), nil)
	}
}

// recordHistory is best-effort: the wall post already exists, so a failed
// write is logged rather than failing the run.
func (p *Pipeline) recordHistory(ctx context.Context, log *slog.Logger, entry queue.Entry, post *reddit.Post, kind reddit.MediaKind, attachments string, postID int64) {
	if p.historian == nil {
		return
	}
	_, err := p.historian.Add(ctx, history.Record{
		SourceURL:   entry.URL,
		MediaKind:   string(kind),
		Attachments: attachments,
		WallPostID:  postID,
		Title:       entry.Title,
	})
	if err != nil {
		log.Warn("history record failed", "error", err, "post_id", post.ID)
	}
}
