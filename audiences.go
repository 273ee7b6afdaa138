package metigan

import (
	"context"
	"time"

	"github.com/metigan/metigan-go/internal/api"
)

// Audiences provides audience management operations.
type Audiences interface {
	// Create creates an audience. Name is required.
	Create(ctx context.Context, name, description string) (*Audience, error)

	// List returns one page of audiences.
	List(ctx context.Context, opts *ListOptions) (*AudienceList, error)

	// Get returns an audience by ID.
	Get(ctx context.Context, audienceID string) (*Audience, error)

	// GetStats returns per-status contact counts for an audience.
	GetStats(ctx context.Context, audienceID string) (*AudienceStats, error)

	// Update changes the audience's name and description. Empty values are
	// left unchanged.
	Update(ctx context.Context, audienceID, name, description string) (*Audience, error)

	// Delete removes an audience.
	Delete(ctx context.Context, audienceID string) error
}

// Audience is a named list of contacts.
type Audience struct {
	ID           string
	Name         string
	Description  string
	ContactCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AudienceList is one page of audiences.
type AudienceList struct {
	Audiences  []*Audience
	Pagination Pagination
	Message    string
}

// AudienceStats holds contact counts by status.
type AudienceStats struct {
	Total        int
	Subscribed   int
	Unsubscribed int
	Pending      int
}

// audiencesImpl implements the Audiences interface.
type audiencesImpl struct {
	client *Client
}

func (a *audiencesImpl) Create(ctx context.Context, name, description string) (*Audience, error) {
	if name == "" {
		return nil, validationError("audience name is required")
	}
	dto, err := a.client.apiClient.CreateAudience(ctx, &api.AudienceRequest{Name: name, Description: description})
	if err != nil {
		return nil, err
	}
	return audienceFromDTO(dto), nil
}

func (a *audiencesImpl) List(ctx context.Context, opts *ListOptions) (*AudienceList, error) {
	params, err := listParams(opts)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.apiClient.ListAudiences(ctx, params)
	if err != nil {
		return nil, err
	}

	list := &AudienceList{
		Audiences:  make([]*Audience, len(resp.Audiences)),
		Pagination: paginationFromDTO(resp.Pagination),
		Message:    resp.Message,
	}
	for i := range resp.Audiences {
		list.Audiences[i] = audienceFromDTO(&resp.Audiences[i])
	}
	return list, nil
}

func (a *audiencesImpl) Get(ctx context.Context, audienceID string) (*Audience, error) {
	if audienceID == "" {
		return nil, validationError("audience ID is required")
	}
	dto, err := a.client.apiClient.GetAudience(ctx, audienceID)
	if err != nil {
		return nil, err
	}
	return audienceFromDTO(dto), nil
}

func (a *audiencesImpl) GetStats(ctx context.Context, audienceID string) (*AudienceStats, error) {
	if audienceID == "" {
		return nil, validationError("audience ID is required")
	}
	dto, err := a.client.apiClient.GetAudienceStats(ctx, audienceID)
	if err != nil {
		return nil, err
	}
	return &AudienceStats{
		Total:        dto.Total,
		Subscribed:   dto.Subscribed,
		Unsubscribed: dto.Unsubscribed,
		Pending:      dto.Pending,
	}, nil
}

func (a *audiencesImpl) Update(ctx context.Context, audienceID, name, description string) (*Audience, error) {
	if audienceID == "" {
		return nil, validationError("audience ID is required")
	}
	if name == "" && description == "" {
		return nil, validationError("nothing to update")
	}
	dto, err := a.client.apiClient.UpdateAudience(ctx, audienceID, &api.AudienceRequest{Name: name, Description: description})
	if err != nil {
		return nil, err
	}
	return audienceFromDTO(dto), nil
}

func (a *audiencesImpl) Delete(ctx context.Context, audienceID string) error {
	if audienceID == "" {
		return validationError("audience ID is required")
	}
	return a.client.apiClient.DeleteAudience(ctx, audienceID)
}

func audienceFromDTO(dto *api.AudienceDTO) *Audience {
	return &Audience{
		ID:           dto.ID,
		Name:         dto.Name,
		Description:  dto.Description,
		ContactCount: dto.ContactCount,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	}
}
