// Package vk wraps the destination platform's upload and wall-post APIs.
//
// Each upload endpoint has its own response shape; the package decodes them
// into closed per-endpoint result structs and normalizes every result into
// an attachment reference token ("video<owner>_<id>", "photo<owner>_<id>",
// "doc<owner>_<id>") consumed verbatim by the wall-post call. The token
// format is a wire contract and must not change.
package vk
