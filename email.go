package metigan

import (
	"context"
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/metigan/metigan-go/internal/api"
)

// Email provides email sending operations.
type Email interface {
	// SendEmail sends msg. Exactly one of Content or TemplateID must be set.
	SendEmail(ctx context.Context, msg *EmailMessage) (*SendResult, error)

	// SendEmailWithTemplate sends msg rendered from the given template.
	// msg.Content must be empty; msg.Variables fills the template placeholders.
	SendEmailWithTemplate(ctx context.Context, templateID string, msg *EmailMessage) (*SendResult, error)
}

// EmailMessage is an outgoing email.
type EmailMessage struct {
	// From is the sender, either "addr@example.com" or "Name <addr@example.com>".
	From       string
	Recipients []string
	Subject    string
	// Content is the HTML or plain text body.
	Content     string
	CC          []string
	BCC         []string
	ReplyTo     string
	Attachments []Attachment
	TemplateID  string
	Variables   map[string]any
}

// Attachment is a file sent with an email. ContentType is detected from
// the filename or content when empty.
type Attachment struct {
	Content     []byte
	Filename    string
	ContentType string
}

// SendResult is the outcome of a send.
type SendResult struct {
	Success          bool
	Message          string
	RecipientCount   int
	EmailsRemaining  *int // nil when the account has no quota
	AttachmentsCount int
	IsTemplate       bool
	SuccessfulEmails []SuccessfulEmail
	FailedEmails     []FailedEmail
}

// SuccessfulEmail is a recipient the email was accepted for.
type SuccessfulEmail struct {
	Recipient  string
	TrackingID string
}

// FailedEmail is a recipient the email was rejected for.
type FailedEmail struct {
	Recipient string
	Error     string
}

// emailImpl implements the Email interface.
type emailImpl struct {
	client *Client
}

func (e *emailImpl) SendEmail(ctx context.Context, msg *EmailMessage) (*SendResult, error) {
	if msg == nil {
		return nil, validationError("message is required")
	}
	if msg.Content == "" && msg.TemplateID == "" {
		return nil, validationError("either content or template ID is required")
	}
	if msg.Content != "" && msg.TemplateID != "" {
		return nil, validationError("content and template ID are mutually exclusive")
	}
	return e.send(ctx, msg)
}

func (e *emailImpl) SendEmailWithTemplate(ctx context.Context, templateID string, msg *EmailMessage) (*SendResult, error) {
	if templateID == "" {
		return nil, validationError("template ID is required")
	}
	if msg == nil {
		return nil, validationError("message is required")
	}
	if msg.Content != "" {
		return nil, validationError("content cannot be combined with a template")
	}
	if msg.TemplateID != "" && msg.TemplateID != templateID {
		return nil, validationError("conflicting template IDs %q and %q", templateID, msg.TemplateID)
	}

	m := *msg
	m.TemplateID = templateID
	return e.send(ctx, &m)
}

func (e *emailImpl) send(ctx context.Context, msg *EmailMessage) (*SendResult, error) {
	req, err := buildSendRequest(msg)
	if err != nil {
		return nil, err
	}

	dto, err := e.client.apiClient.SendEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	return sendResultFromDTO(dto), nil
}

// buildSendRequest validates msg and converts it to the wire request.
func buildSendRequest(msg *EmailMessage) (*api.SendEmailRequest, error) {
	if err := validateAddress("from", msg.From); err != nil {
		return nil, err
	}
	if len(msg.Recipients) == 0 {
		return nil, validationError("at least one recipient is required")
	}
	for _, lists := range []struct {
		field string
		addrs []string
	}{
		{"recipient", msg.Recipients},
		{"cc", msg.CC},
		{"bcc", msg.BCC},
	} {
		for _, addr := range lists.addrs {
			if err := validateAddress(lists.field, addr); err != nil {
				return nil, err
			}
		}
	}
	if msg.ReplyTo != "" {
		if err := validateAddress("reply-to", msg.ReplyTo); err != nil {
			return nil, err
		}
	}

	attachments := make([]api.AttachmentDTO, 0, len(msg.Attachments))
	for i, a := range msg.Attachments {
		if a.Filename == "" {
			return nil, validationError("attachment %d: filename is required", i)
		}
		attachments = append(attachments, api.AttachmentDTO{
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			Filename:    a.Filename,
			ContentType: attachmentContentType(a),
		})
	}

	return &api.SendEmailRequest{
		From:        msg.From,
		Recipients:  msg.Recipients,
		Subject:     msg.Subject,
		Content:     msg.Content,
		CC:          msg.CC,
		BCC:         msg.BCC,
		ReplyTo:     msg.ReplyTo,
		Attachments: attachments,
		TemplateID:  msg.TemplateID,
		Variables:   msg.Variables,
	}, nil
}

func validateAddress(field, addr string) error {
	if strings.TrimSpace(addr) == "" {
		return validationError("%s address is required", field)
	}
	if !strings.Contains(addr, "@") {
		return validationError("invalid %s address %q", field, addr)
	}
	return nil
}

func attachmentContentType(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(a.Filename)); ct != "" {
		return ct
	}
	return http.DetectContentType(a.Content)
}

func sendResultFromDTO(dto *api.SendEmailResponse) *SendResult {
	result := &SendResult{
		Success:          dto.Success,
		Message:          dto.Message,
		RecipientCount:   dto.RecipientCount,
		EmailsRemaining:  dto.EmailsRemaining,
		AttachmentsCount: dto.AttachmentsCount,
		IsTemplate:       dto.IsTemplate,
		SuccessfulEmails: make([]SuccessfulEmail, len(dto.SuccessfulEmails)),
		FailedEmails:     make([]FailedEmail, len(dto.FailedEmails)),
	}
	for i, s := range dto.SuccessfulEmails {
		result.SuccessfulEmails[i] = SuccessfulEmail{Recipient: s.Recipient, TrackingID: s.TrackingID}
	}
	for i, f := range dto.FailedEmails {
		result.FailedEmails[i] = FailedEmail{Recipient: f.Recipient, Error: f.Error}
	}
	return result
}
