package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/metigan/metigan-go/internal/apierrors"
)

// ListParams are the query parameters shared by list endpoints.
// Zero values are omitted.
type ListParams struct {
	Page       int
	Limit      int
	Status     string
	AudienceID string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.AudienceID != "" {
		q.Set("audienceId", p.AudienceID)
	}
	return q
}

func resourcePath(collection, id string, suffix ...string) string {
	path := fmt.Sprintf("/api/%s/%s", collection, url.PathEscape(id))
	for _, s := range suffix {
		path += "/" + s
	}
	return path
}

// SendEmail sends an email, either with inline content or a template.
func (c *Client) SendEmail(ctx context.Context, req *SendEmailRequest) (*SendEmailResponse, error) {
	var result SendEmailResponse
	r := &Request{Method: http.MethodPost, Path: "/api/email/send", Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceEmail)
	}
	return &result, nil
}
