package api

import (
	"context"
	"net/http"

	"github.com/metigan/metigan-go/internal/apierrors"
)

// ListTemplates returns one page of templates.
func (c *Client) ListTemplates(ctx context.Context, params ListParams) (*TemplateListResponse, error) {
	var result TemplateListResponse
	r := &Request{Method: http.MethodGet, Path: "/api/templates", Query: params.values()}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTemplate)
	}
	return &result, nil
}

// GetTemplate returns a template by ID.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*TemplateDTO, error) {
	var result TemplateResponse
	r := &Request{Method: http.MethodGet, Path: resourcePath("templates", templateID)}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTemplate)
	}
	return &result.Template, nil
}
