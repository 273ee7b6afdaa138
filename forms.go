package metigan

import (
	"context"
	"time"

	"github.com/metigan/metigan-go/internal/api"
)

// Forms provides form operations.
type Forms interface {
	// List returns one page of forms.
	List(ctx context.Context, opts *ListOptions) (*FormList, error)

	// Get returns a form by ID or slug.
	Get(ctx context.Context, idOrSlug string) (*Form, error)

	// Submit posts data to a form. data must not be empty.
	Submit(ctx context.Context, formID string, data map[string]any) (*FormSubmission, error)
}

// Form is a hosted form and its field schema.
type Form struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Fields      []FormField
	CreatedAt   time.Time
}

// FormField describes one input of a form.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Required bool
}

// FormList is one page of forms.
type FormList struct {
	Forms      []*Form
	Pagination Pagination
	Message    string
}

// FormSubmission is the service's acknowledgement of a submission.
type FormSubmission struct {
	ID      string
	FormID  string
	Message string
}

// formsImpl implements the Forms interface.
type formsImpl struct {
	client *Client
}

func (f *formsImpl) List(ctx context.Context, opts *ListOptions) (*FormList, error) {
	params, err := listParams(opts)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.apiClient.ListForms(ctx, params)
	if err != nil {
		return nil, err
	}

	list := &FormList{
		Forms:      make([]*Form, len(resp.Forms)),
		Pagination: paginationFromDTO(resp.Pagination),
		Message:    resp.Message,
	}
	for i := range resp.Forms {
		list.Forms[i] = formFromDTO(&resp.Forms[i])
	}
	return list, nil
}

func (f *formsImpl) Get(ctx context.Context, idOrSlug string) (*Form, error) {
	if idOrSlug == "" {
		return nil, validationError("form ID or slug is required")
	}
	dto, err := f.client.apiClient.GetForm(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return formFromDTO(dto), nil
}

func (f *formsImpl) Submit(ctx context.Context, formID string, data map[string]any) (*FormSubmission, error) {
	if formID == "" {
		return nil, validationError("form ID is required")
	}
	if len(data) == 0 {
		return nil, validationError("form data is required")
	}

	resp, err := f.client.apiClient.SubmitForm(ctx, formID, &api.SubmitFormRequest{Data: data})
	if err != nil {
		return nil, err
	}

	submission := &FormSubmission{
		ID:      resp.SubmissionID,
		FormID:  resp.FormID,
		Message: resp.Message,
	}
	if submission.FormID == "" {
		submission.FormID = formID
	}
	return submission, nil
}

func formFromDTO(dto *api.FormDTO) *Form {
	form := &Form{
		ID:          dto.ID,
		Slug:        dto.Slug,
		Name:        dto.Name,
		Description: dto.Description,
		Fields:      make([]FormField, len(dto.Fields)),
		CreatedAt:   dto.CreatedAt,
	}
	for i, field := range dto.Fields {
		form.Fields[i] = FormField{
			Name:     field.Name,
			Label:    field.Label,
			Type:     field.Type,
			Required: field.Required,
		}
	}
	return form
}
