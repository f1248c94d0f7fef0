package api

import "context"

// FetchComments fetches the full comment list. The order of the response is kept.
func (c *Client) FetchComments(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, c.endpoint, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		// A literal `null` body decodes without error.
		comments = []Comment{}
	}
	c.log.Debug().Int("count", len(comments)).Msg("comments fetched")
	return comments, nil
}
