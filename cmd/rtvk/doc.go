// Command rtvk re-posts media from a content-aggregation post onto a
// social-network group wall.
//
// "rtvk post <url> <tags> <title>" publishes one post immediately;
// "rtvk post" with no arguments pops and publishes the oldest queued item.
// "rtvk add" appends to the queue. Supporting commands inspect the queue,
// the publish history, the effective configuration, and the availability of
// the external ffmpeg dependency.
package main
