package metigan

import (
	"context"
	"time"

	"github.com/metigan/metigan-go/internal/api"
)

// ContactStatus is the subscription state of a contact.
type ContactStatus string

const (
	StatusSubscribed   ContactStatus = "subscribed"
	StatusUnsubscribed ContactStatus = "unsubscribed"
	StatusPending      ContactStatus = "pending"
)

func (s ContactStatus) valid() bool {
	switch s {
	case StatusSubscribed, StatusUnsubscribed, StatusPending:
		return true
	}
	return false
}

// Contacts provides contact management operations.
type Contacts interface {
	// Create adds a contact to an audience.
	Create(ctx context.Context, params *CreateContactParams) (*Contact, error)

	// Get returns a contact by ID.
	Get(ctx context.Context, contactID string) (*Contact, error)

	// List returns one page of contacts matching the filter.
	List(ctx context.Context, opts *ListContactsOptions) (*ContactList, error)

	// ListAll returns every contact matching the filter, fetching pages in order.
	ListAll(ctx context.Context, opts *ListContactsOptions) ([]*Contact, error)

	// Update changes the non-nil fields of params.
	Update(ctx context.Context, contactID string, params *UpdateContactParams) (*Contact, error)

	// Delete removes a contact.
	Delete(ctx context.Context, contactID string) error

	// Subscribe sets the contact's status to subscribed.
	Subscribe(ctx context.Context, contactID string) (*Contact, error)

	// Unsubscribe sets the contact's status to unsubscribed.
	Unsubscribe(ctx context.Context, contactID string) (*Contact, error)
}

// Contact is a recipient stored in an audience.
type Contact struct {
	ID         string
	Email      string
	AudienceID string
	FirstName  string
	LastName   string
	Phone      string
	Tags       []string
	Status     ContactStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateContactParams are the fields of a new contact.
// Email and AudienceID are required.
type CreateContactParams struct {
	Email      string
	AudienceID string
	FirstName  string
	LastName   string
	Phone      string
	Tags       []string
	Status     ContactStatus
}

// UpdateContactParams holds the fields to change. Nil fields are left as is.
type UpdateContactParams struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Tags      []string
	Status    *ContactStatus
}

// ListContactsOptions filters a contact listing.
type ListContactsOptions struct {
	ListOptions
	AudienceID string
	Status     ContactStatus
}

// ContactList is one page of contacts.
type ContactList struct {
	Contacts   []*Contact
	Pagination Pagination
	Message    string
}

// contactsImpl implements the Contacts interface.
type contactsImpl struct {
	client *Client
}

func (c *contactsImpl) Create(ctx context.Context, params *CreateContactParams) (*Contact, error) {
	if params == nil {
		return nil, validationError("contact parameters are required")
	}
	if err := validateAddress("contact email", params.Email); err != nil {
		return nil, err
	}
	if params.AudienceID == "" {
		return nil, validationError("audience ID is required")
	}
	if params.Status != "" && !params.Status.valid() {
		return nil, validationError("invalid contact status %q", params.Status)
	}

	dto, err := c.client.apiClient.CreateContact(ctx, &api.CreateContactRequest{
		Email:      params.Email,
		AudienceID: params.AudienceID,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Phone:      params.Phone,
		Tags:       params.Tags,
		Status:     string(params.Status),
	})
	if err != nil {
		return nil, err
	}
	return contactFromDTO(dto), nil
}

func (c *contactsImpl) Get(ctx context.Context, contactID string) (*Contact, error) {
	if contactID == "" {
		return nil, validationError("contact ID is required")
	}
	dto, err := c.client.apiClient.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return contactFromDTO(dto), nil
}

func (c *contactsImpl) List(ctx context.Context, opts *ListContactsOptions) (*ContactList, error) {
	params, err := contactListParams(opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.apiClient.ListContacts(ctx, params)
	if err != nil {
		return nil, err
	}
	return contactListFromDTO(resp), nil
}

func (c *contactsImpl) ListAll(ctx context.Context, opts *ListContactsOptions) ([]*Contact, error) {
	params, err := contactListParams(opts)
	if err != nil {
		return nil, err
	}
	if params.Page == 0 {
		params.Page = 1
	}

	var all []*Contact
	for {
		resp, err := c.client.apiClient.ListContacts(ctx, params)
		if err != nil {
			return nil, err
		}
		page := contactListFromDTO(resp)
		all = append(all, page.Contacts...)

		if len(page.Contacts) == 0 || params.Page >= page.Pagination.Pages {
			return all, nil
		}
		params.Page++
	}
}

func (c *contactsImpl) Update(ctx context.Context, contactID string, params *UpdateContactParams) (*Contact, error) {
	if contactID == "" {
		return nil, validationError("contact ID is required")
	}
	if params == nil {
		return nil, validationError("contact parameters are required")
	}

	req := &api.UpdateContactRequest{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Tags:      params.Tags,
	}
	if params.Status != nil {
		if !params.Status.valid() {
			return nil, validationError("invalid contact status %q", *params.Status)
		}
		s := string(*params.Status)
		req.Status = &s
	}

	dto, err := c.client.apiClient.UpdateContact(ctx, contactID, req)
	if err != nil {
		return nil, err
	}
	return contactFromDTO(dto), nil
}

func (c *contactsImpl) Delete(ctx context.Context, contactID string) error {
	if contactID == "" {
		return validationError("contact ID is required")
	}
	return c.client.apiClient.DeleteContact(ctx, contactID)
}

func (c *contactsImpl) Subscribe(ctx context.Context, contactID string) (*Contact, error) {
	status := StatusSubscribed
	return c.Update(ctx, contactID, &UpdateContactParams{Status: &status})
}

func (c *contactsImpl) Unsubscribe(ctx context.Context, contactID string) (*Contact, error) {
	status := StatusUnsubscribed
	return c.Update(ctx, contactID, &UpdateContactParams{Status: &status})
}

func contactListParams(opts *ListContactsOptions) (api.ListParams, error) {
	if opts == nil {
		return api.ListParams{}, nil
	}
	params, err := listParams(&opts.ListOptions)
	if err != nil {
		return params, err
	}
	if opts.Status != "" && !opts.Status.valid() {
		return params, validationError("invalid contact status %q", opts.Status)
	}
	params.Status = string(opts.Status)
	params.AudienceID = opts.AudienceID
	return params, nil
}

func contactFromDTO(dto *api.ContactDTO) *Contact {
	return &Contact{
		ID:         dto.ID,
		Email:      dto.Email,
		AudienceID: dto.AudienceID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Phone:      dto.Phone,
		Tags:       dto.Tags,
		Status:     ContactStatus(dto.Status),
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}

func contactListFromDTO(dto *api.ContactListResponse) *ContactList {
	list := &ContactList{
		Contacts:   make([]*Contact, len(dto.Contacts)),
		Pagination: paginationFromDTO(dto.Pagination),
		Message:    dto.Message,
	}
	for i := range dto.Contacts {
		list.Contacts[i] = contactFromDTO(&dto.Contacts[i])
	}
	return list
}
