package backend

import (
	"context"
	"net/http"
	"net/url"
)

type newMessage struct {
	Content string `json:"content"`
}

// bearer returns the access token to send with row requests, refreshing it
// first when it is about to expire. "" falls back to the anon key when
// signed out or when the refresh was rejected.
func (c *Client) bearer(ctx context.Context) (string, error) {
	sess, err := c.validSession(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// SelectMessages returns every row of the messages table visible to the
// current user, in the order the service returns them.
func (c *Client) SelectMessages(ctx context.Context) ([]Message, error) {
	const op = "backend.SelectMessages"

	token, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Message
	err = c.do(ctx, op, request{
		method: http.MethodGet,
		path:   restPrefix + "/" + MessagesTable,
		query:  url.Values{"select": {"*"}},
		token:  token,
	}, &rows)
	if err != nil {
		return nil, wrapData(op, err)
	}
	if rows == nil {
		rows = []Message{}
	}
	c.log().Debug("fetched messages", "count", len(rows))
	return rows, nil
}

// InsertMessage inserts one row with the given content.
func (c *Client) InsertMessage(ctx context.Context, content string) error {
	const op = "backend.InsertMessage"

	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	err = c.do(ctx, op, request{
		method: http.MethodPost,
		path:   restPrefix + "/" + MessagesTable,
		body:   []newMessage{{Content: content}},
		token:  token,
		prefer: "return=minimal",
	}, nil)
	if err != nil {
		return wrapData(op, err)
	}
	c.log().Debug("inserted message", "length", len(content))
	return nil
}
