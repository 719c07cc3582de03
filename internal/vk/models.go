package vk

import "fmt"

// uploadServer is the common "give me an upload URL" response.
type uploadServer struct {
	UploadURL string `json:"upload_url"`
}

// videoSaveResult is the video.save response. The owner and id are assigned
// before the file transfer happens.
type videoSaveResult struct {
	OwnerID   int64  `json:"owner_id"`
	VideoID   int64  `json:"video_id"`
	UploadURL string `json:"upload_url"`
}

// photoUploadResult is the raw payload the photo upload server returns; it
// is echoed back verbatim to photos.saveWallPhoto.
type photoUploadResult struct {
	Server int64  `json:"server"`
	Photo  string `json:"photo"`
	Hash   string `json:"hash"`
}

// savedPhoto is one element of the photos.saveWallPhoto response.
type savedPhoto struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`
}

// docUploadResult is the raw payload the document upload server returns.
type docUploadResult struct {
	File string `json:"file"`
}

// savedDoc is the docs.save response variant this tool consumes.
type savedDoc struct {
	Type string `json:"type"`
	Doc  struct {
		ID      int64 `json:"id"`
		OwnerID int64 `json:"owner_id"`
	} `json:"doc"`
}

// wallPostResult is the wall.post response.
type wallPostResult struct {
	PostID int64 `json:"post_id"`
}

// VideoRef formats a video attachment reference.
func VideoRef(ownerID, videoID int64) string {
	return fmt.Sprintf("video%d_%d", ownerID, videoID)
}

// PhotoRef formats a photo attachment reference.
func PhotoRef(ownerID, photoID int64) string {
	return fmt.Sprintf("photo%d_%d", ownerID, photoID)
}

// DocRef formats a document attachment reference.
func DocRef(ownerID, docID int64) string {
	return fmt.Sprintf("doc%d_%d", ownerID, docID)
}
