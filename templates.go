package metigan

import (
	"context"
	"time"

	"github.com/metigan/metigan-go/internal/api"
)

// Templates provides read-only access to email templates.
type Templates interface {
	List(ctx context.Context, opts *ListOptions) (*TemplateList, error)
	Get(ctx context.Context, templateID string) (*Template, error)
}

// Template is a stored email template. Variables names its placeholders.
type Template struct {
	ID        string
	Name      string
	Subject   string
	Content   string
	Variables []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateList is one page of templates.
type TemplateList struct {
	Templates  []*Template
	Pagination Pagination
	Message    string
}

type templatesImpl struct {
	client *Client
}

func (t *templatesImpl) List(ctx context.Context, opts *ListOptions) (*TemplateList, error) {
	params, err := listParams(opts)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.apiClient.ListTemplates(ctx, params)
	if err != nil {
		return nil, err
	}

	list := &TemplateList{
		Templates:  make([]*Template, len(resp.Templates)),
		Pagination: paginationFromDTO(resp.Pagination),
		Message:    resp.Message,
	}
	for i := range resp.Templates {
		list.Templates[i] = templateFromDTO(&resp.Templates[i])
	}
	return list, nil
}

func (t *templatesImpl) Get(ctx context.Context, templateID string) (*Template, error) {
	if templateID == "" {
		return nil, validationError("template ID is required")
	}
	dto, err := t.client.apiClient.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return templateFromDTO(dto), nil
}

func templateFromDTO(dto *api.TemplateDTO) *Template {
	return &Template{
		ID:        dto.ID,
		Name:      dto.Name,
		Subject:   dto.Subject,
		Content:   dto.Content,
		Variables: dto.Variables,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}
