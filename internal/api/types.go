package api

import "time"

// Remote payloads use camelCase field names. Every type here is translated
// field by field into the exported types of the root package.

// Envelope is the common part of every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PaginationDTO is the pagination block of list responses.
type PaginationDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Email

// AttachmentDTO is an attachment with base64-encoded content.
type AttachmentDTO struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// SendEmailRequest is the request body for POST /api/email/send.
type SendEmailRequest struct {
	From        string          `json:"from"`
	Recipients  []string        `json:"recipients"`
	Subject     string          `json:"subject,omitempty"`
	Content     string          `json:"content,omitempty"`
	CC          []string        `json:"cc,omitempty"`
	BCC         []string        `json:"bcc,omitempty"`
	ReplyTo     string          `json:"replyTo,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
	TemplateID  string          `json:"templateId,omitempty"`
	Variables   map[string]any  `json:"variables,omitempty"`
}

// SuccessfulEmailDTO is one delivered recipient.
type SuccessfulEmailDTO struct {
	Recipient  string `json:"recipient"`
	TrackingID string `json:"trackingId"`
}

// FailedEmailDTO is one rejected recipient.
type FailedEmailDTO struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

// SendEmailResponse is the response body for POST /api/email/send.
type SendEmailResponse struct {
	Envelope
	SuccessfulEmails []SuccessfulEmailDTO `json:"successfulEmails"`
	FailedEmails     []FailedEmailDTO     `json:"failedEmails"`
	RecipientCount   int                  `json:"recipientCount"`
	EmailsRemaining  *int                 `json:"emailsRemaining"`
	AttachmentsCount int                  `json:"attachmentsCount"`
	IsTemplate       bool                 `json:"isTemplate"`
}

// Contacts

// ContactDTO is a contact as returned by the API.
type ContactDTO struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	AudienceID string    `json:"audienceId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	Tags       []string  `json:"tags"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateContactRequest is the request body for POST /api/contacts.
type CreateContactRequest struct {
	Email      string   `json:"email"`
	AudienceID string   `json:"audienceId"`
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// UpdateContactRequest is the request body for PUT /api/contacts/{id}.
// Only non-nil fields are sent.
type UpdateContactRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Status    *string  `json:"status,omitempty"`
}

// ContactResponse wraps a single contact.
type ContactResponse struct {
	Envelope
	Contact ContactDTO `json:"contact"`
}

// ContactListResponse is the response body for GET /api/contacts.
type ContactListResponse struct {
	Envelope
	Contacts   []ContactDTO  `json:"contacts"`
	Pagination PaginationDTO `json:"pagination"`
}

// Audiences

// AudienceDTO is an audience as returned by the API.
type AudienceDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ContactCount int       `json:"contactCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AudienceRequest is the request body for creating or updating an audience.
type AudienceRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// AudienceResponse wraps a single audience.
type AudienceResponse struct {
	Envelope
	Audience AudienceDTO `json:"audience"`
}

// AudienceListResponse is the response body for GET /api/audiences.
type AudienceListResponse struct {
	Envelope
	Audiences  []AudienceDTO `json:"audiences"`
	Pagination PaginationDTO `json:"pagination"`
}

// AudienceStatsDTO holds per-status contact counts.
type AudienceStatsDTO struct {
	Total        int `json:"total"`
	Subscribed   int `json:"subscribed"`
	Unsubscribed int `json:"unsubscribed"`
	Pending      int `json:"pending"`
}

// AudienceStatsResponse is the response body for GET /api/audiences/{id}/stats.
type AudienceStatsResponse struct {
	Envelope
	Stats AudienceStatsDTO `json:"stats"`
}

// Templates

// TemplateDTO is an email template as returned by the API.
type TemplateDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateResponse wraps a single template.
type TemplateResponse struct {
	Envelope
	Template TemplateDTO `json:"template"`
}

// TemplateListResponse is the response body for GET /api/templates.
type TemplateListResponse struct {
	Envelope
	Templates  []TemplateDTO `json:"templates"`
	Pagination PaginationDTO `json:"pagination"`
}

// Forms

// FormFieldDTO describes one input of a form.
type FormFieldDTO struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FormDTO is a form as returned by the API.
type FormDTO struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Fields      []FormFieldDTO `json:"fields"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// FormResponse wraps a single form.
type FormResponse struct {
	Envelope
	Form FormDTO `json:"form"`
}

// FormListResponse is the response body for GET /api/forms.
type FormListResponse struct {
	Envelope
	Forms      []FormDTO     `json:"forms"`
	Pagination PaginationDTO `json:"pagination"`
}

// SubmitFormRequest is the request body for POST /api/forms/{id}/submit.
type SubmitFormRequest struct {
	Data map[string]any `json:"data"`
}

// SubmitFormResponse is the response body for a form submission.
type SubmitFormResponse struct {
	Envelope
	SubmissionID string `json:"submissionId"`
	FormID       string `json:"formId"`
}
