package api

import (
	"context"
	"net/http"

	"github.com/metigan/metigan-go/internal/apierrors"
)

// CreateContact creates a contact in an audience.
func (c *Client) CreateContact(ctx context.Context, req *CreateContactRequest) (*ContactDTO, error) {
	var result ContactResponse
	r := &Request{Method: http.MethodPost, Path: "/api/contacts", Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceContact)
	}
	return &result.Contact, nil
}

// GetContact returns a contact by ID.
func (c *Client) GetContact(ctx context.Context, contactID string) (*ContactDTO, error) {
	var result ContactResponse
	r := &Request{Method: http.MethodGet, Path: resourcePath("contacts", contactID)}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceContact)
	}
	return &result.Contact, nil
}

// ListContacts returns one page of contacts.
func (c *Client) ListContacts(ctx context.Context, params ListParams) (*ContactListResponse, error) {
	var result ContactListResponse
	r := &Request{Method: http.MethodGet, Path: "/api/contacts", Query: params.values()}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceContact)
	}
	return &result, nil
}

// UpdateContact updates the given fields of a contact.
func (c *Client) UpdateContact(ctx context.Context, contactID string, req *UpdateContactRequest) (*ContactDTO, error) {
	var result ContactResponse
	r := &Request{Method: http.MethodPut, Path: resourcePath("contacts", contactID), Body: req}
	if err := c.Do(ctx, r, &result); err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceContact)
	}
	return &result.Contact, nil
}

// DeleteContact deletes a contact.
func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	r := &Request{Method: http.MethodDelete, Path: resourcePath("contacts", contactID)}
	return apierrors.WithResourceType(c.Do(ctx, r, nil), apierrors.ResourceContact)
}
