package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// audioPattern matches the variable portion of a DASH video URL. The audio
// companion stream always lives at the fixed DASH_audio.mp4 name.
var audioPattern = regexp.MustCompile(`DASH_.+\.mp4`)

// AudioURL derives the audio-stream URL from a video URL. A URL without a
// DASH_*.mp4 segment is returned unchanged.
func AudioURL(videoURL string) string {
	return audioPattern.ReplaceAllString(videoURL, "DASH_audio.mp4")
}

// Fetcher downloads a remote asset.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Asset is an assembled media file plus the temp files behind it. Close
// removes all of them; callers defer it as soon as Assemble succeeds.
type Asset struct {
	Path  string
	paths []string
}

// Close deletes the asset's temporary files. Safe to call more than once.
func (a *Asset) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for _, path := range a.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	a.paths = nil
	return errors.Join(errs...)
}

// Assembler downloads the split streams of a video post and muxes them.
type Assembler struct {
	fetcher      Fetcher
	ffmpegBinary string
	tempDir      string
	exec         Executor
}

// Option configures the assembler.
type Option func(*Assembler)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(a *Assembler) {
		if exec != nil {
			a.exec = exec
		}
	}
}

// NewAssembler constructs an assembler writing under tempDir.
func NewAssembler(fetcher Fetcher, ffmpegBinary, tempDir string, opts ...Option) (*Assembler, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher required")
	}
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(tempDir) == "" {
		tempDir = os.TempDir()
	}
	a := &Assembler{
		fetcher:      fetcher,
		ffmpegBinary: ffmpegBinary,
		tempDir:      tempDir,
		exec:         commandExecutor{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Assemble fetches the video and its audio companion, muxes them with a
// stream copy, and returns the merged file. The caller owns the returned
// asset and must Close it after the upload.
func (a *Assembler) Assemble(ctx context.Context, videoURL string) (*Asset, error) {
	audioURL := AudioURL(videoURL)

	videoBytes, err := a.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("download video stream: %w", err)
	}
	audioBytes, err := a.fetcher.Fetch(ctx, audioURL)
	if err != nil {
		return nil, fmt.Errorf("download audio stream: %w", err)
	}

	suffix := fileSuffix(videoURL)
	videoPath := filepath.Join(a.tempDir, "rtvk_video_"+suffix)
	audioPath := filepath.Join(a.tempDir, "rtvk_audio_"+suffix)
	mergedPath := filepath.Join(a.tempDir, "rtvk_merged_"+suffix)

	asset := &Asset{Path: mergedPath, paths: []string{videoPath, audioPath, mergedPath}}

	if err := writeExclusive(videoPath, videoBytes); err != nil {
		_ = asset.Close()
		return nil, err
	}
	if err := writeExclusive(audioPath, audioBytes); err != nil {
		_ = asset.Close()
		return nil, err
	}

	args := []string{"-nostdin", "-i", videoPath, "-i", audioPath, "-c", "copy", mergedPath}
	if err := a.exec.Run(ctx, a.ffmpegBinary, args); err != nil {
		_ = asset.Close()
		return nil, fmt.Errorf("mux streams: %w", err)
	}
	return asset, nil
}

// fileSuffix derives a shared temp-file suffix from the URL: the path
// segment between the last slash and the query string, sanitized, with
// ".mp4" appended. The suffix carries no random component, so the exclusive
// create below is what guards against collisions between runs.
func fileSuffix(videoURL string) string {
	segment := videoURL
	if i := strings.IndexByte(segment, '?'); i >= 0 {
		segment = segment[:i]
	}
	if i := strings.LastIndexByte(segment, '/'); i >= 0 {
		segment = segment[i+1:]
	}
	segment = sanitizeFileName(segment)
	if segment == "" {
		segment = "stream"
	}
	return segment + ".mp4"
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func writeExclusive(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp media file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write temp media file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close temp media file %s: %w", path, err)
	}
	return nil
}
