package api

import (
	"context"
	"net/http"

	"github.com/metigan/metigan-go/internal/apierrors"
)

// CreateAudience creates an audience.
func (c *Client) CreateAudience(ctx context.Context, req *AudienceRequest) (*AudienceDTO, error) {
	var result AudienceResponse
	r := &Request{Method: http.MethodPost, Path: "/api/audiences", Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAudience)
	}
	return &result.Audience, nil
}

// ListAudiences returns one page of audiences.
func (c *Client) ListAudiences(ctx context.Context, params ListParams) (*AudienceListResponse, error) {
	var result AudienceListResponse
	r := &Request{Method: http.MethodGet, Path: "/api/audiences", Query: params.values()}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAudience)
	}
	return &result, nil
}

// GetAudience returns an audience by ID.
func (c *Client) GetAudience(ctx context.Context, audienceID string) (*AudienceDTO, error) {
	var result AudienceResponse
	r := &Request{Method: http.MethodGet, Path: resourcePath("audiences", audienceID)}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAudience)
	}
	return &result.Audience, nil
}

// GetAudienceStats returns per-status contact counts for an audience.
func (c *Client) GetAudienceStats(ctx context.Context, audienceID string) (*AudienceStatsDTO, error) {
	var result AudienceStatsResponse
	r := &Request{Method: http.MethodGet, Path: resourcePath("audiences", audienceID, "stats")}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAudience)
	}
	return &result.Stats, nil
}

// UpdateAudience updates an audience's name or description.
func (c *Client) UpdateAudience(ctx context.Context, audienceID string, req *AudienceRequest) (*AudienceDTO, error) {
	var result AudienceResponse
	r := &Request{Method: http.MethodPut, Path: resourcePath("audiences", audienceID), Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceAudience)
	}
	return &result.Audience, nil
}

// DeleteAudience deletes an audience.
func (c *Client) DeleteAudience(ctx context.Context, audienceID string) error {
	r := &Request{Method: http.MethodDelete, Path: resourcePath("audiences", audienceID)}
	return apierrors.WithResourceType(c.Do(ctx, r, nil), apierrors.ResourceAudience)
}
