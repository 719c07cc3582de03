package vk

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// UploadVideo uploads an assembled local video file and returns its
// attachment reference. The owner and id come from video.save, which runs
// before the byte transfer.
func (c *Client) UploadVideo(ctx context.Context, localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read assembled video: %w", err)
	}

	var saved videoSaveResult
	if err := c.call(ctx, "video.save", c.groupParams(), &saved); err != nil {
		return "", err
	}
	if saved.UploadURL == "" {
		return "", errors.New("video.save returned no upload url")
	}

	var transfer struct {
		VideoID int64 `json:"video_id"`
	}
	if err := c.postFile(ctx, saved.UploadURL, "video_file", filepath.Base(localPath), data, &transfer); err != nil {
		return "", err
	}

	return VideoRef(saved.OwnerID, saved.VideoID), nil
}

// UploadImage re-hosts a remote image on the destination wall and returns
// its attachment reference.
func (c *Client) UploadImage(ctx context.Context, imageURL string) (string, error) {
	data, err := c.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return "", err
	}

	var server uploadServer
	if err := c.call(ctx, "photos.getWallUploadServer", c.groupParams(), &server); err != nil {
		return "", err
	}
	if server.UploadURL == "" {
		return "", errors.New("photos.getWallUploadServer returned no upload url")
	}

	var uploaded photoUploadResult
	if err := c.postFile(ctx, server.UploadURL, "photo", "photo.jpg", data, &uploaded); err != nil {
		return "", err
	}

	params := c.groupParams()
	params.Set("server", fmt.Sprint(uploaded.Server))
	params.Set("photo", uploaded.Photo)
	params.Set("hash", uploaded.Hash)

	var saved []savedPhoto
	if err := c.call(ctx, "photos.saveWallPhoto", params, &saved); err != nil {
		return "", err
	}
	if len(saved) == 0 {
		return "", errors.New("photos.saveWallPhoto returned no photos")
	}

	return PhotoRef(saved[0].OwnerID, saved[0].ID), nil
}

// UploadGif re-hosts a remote animated image as a document and returns its
// attachment reference.
func (c *Client) UploadGif(ctx context.Context, gifURL string) (string, error) {
	data, err := c.fetcher.Fetch(ctx, gifURL)
	if err != nil {
		return "", err
	}

	var server uploadServer
	if err := c.call(ctx, "docs.getWallUploadServer", c.groupParams(), &server); err != nil {
		return "", err
	}
	if server.UploadURL == "" {
		return "", errors.New("docs.getWallUploadServer returned no upload url")
	}

	var uploaded docUploadResult
	if err := c.postFile(ctx, server.UploadURL, "file", "animation.gif", data, &uploaded); err != nil {
		return "", err
	}
	if uploaded.File == "" {
		return "", errors.New("doc upload server returned no file token")
	}

	var saved savedDoc
	if err := c.call(ctx, "docs.save", url.Values{"file": []string{uploaded.File}}, &saved); err != nil {
		return "", err
	}

	return DocRef(saved.Doc.OwnerID, saved.Doc.ID), nil
}
