// Package reddit resolves content-aggregation submissions and decides what
// kind of media they carry.
//
// The client authenticates with OAuth2 client credentials and resolves a
// submission by its URL. Responses are decoded at this boundary into the
// closed Post type; downstream code switches on the classified MediaKind
// instead of probing raw payload fields.
package reddit
