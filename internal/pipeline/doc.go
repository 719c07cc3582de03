// Package pipeline sequences one repost run: resolve the source post,
// classify its media, re-host the media on the destination, compose the
// message, and publish one wall post.
//
// A run walks Start -> PostFetched -> Classified -> MediaUploaded ->
// Published, or drops to Failed from any state. There is no partial-success
// recovery: media uploaded before a later failure stays orphaned on the
// destination. The invocation handles exactly one work item and exits.
package pipeline
