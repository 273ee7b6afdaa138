package api

import (
	"context"
	"net/http"

	"github.com/metigan/metigan-go/internal/apierrors"
)

// ListForms returns one page of forms.
func (c *Client) ListForms(ctx context.Context, params ListParams) (*FormListResponse, error) {
	var result FormListResponse
	r := &Request{Method: http.MethodGet, Path: "/api/forms", Query: params.values()}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceForm)
	}
	return &result, nil
}

// GetForm returns a form by ID or slug.
func (c *Client) GetForm(ctx context.Context, idOrSlug string) (*FormDTO, error) {
	var result FormResponse
	r := &Request{Method: http.MethodGet, Path: resourcePath("forms", idOrSlug)}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceForm)
	}
	return &result.Form, nil
}

// SubmitForm submits data to a form.
func (c *Client) SubmitForm(ctx context.Context, formID string, req *SubmitFormRequest) (*SubmitFormResponse, error) {
	var result SubmitFormResponse
	r := &Request{Method: http.MethodPost, Path: resourcePath("forms", formID, "submit"), Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceForm)
	}
	return &result, nil
}
