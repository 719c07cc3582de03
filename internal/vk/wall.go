package vk

import (
	"context"
	"fmt"
	"net/url"
)

// WallPost publishes one post with the composed message and the comma-joined
// attachment reference string. Posts to a community go out from the group
// identity.
func (c *Client) WallPost(ctx context.Context, message, attachments string) (int64, error) {
	params := url.Values{}
	params.Set("message", message)
	if attachments != "" {
		params.Set("attachments", attachments)
	}
	if owner := c.WallOwnerID(); owner != 0 {
		params.Set("owner_id", fmt.Sprint(owner))
		params.Set("from_group", "1")
	}

	var result wallPostResult
	if err := c.call(ctx, "wall.post", params, &result); err != nil {
		return 0, err
	}
	return result.PostID, nil
}
