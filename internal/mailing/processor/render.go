package processor

import (
	"fmt"
	"strings"

	"review-server/internal/store"

	"github.com/google/uuid"
	"github.com/osteele/liquid"
)

const (
	DefaultCustomerName = "Valued Customer"

	placeholderCustomerName = "[Customer Name]"
	placeholderOrderNumber  = "[Order Number]"
	placeholderCompanyName  = "[Company Name]"
	placeholderReviewLink   = "[Review Link]"
)

// Fixed strings of the HTML layout, translated together with the content.
const (
	keyButtonText  = "button_text"
	keyClosingText = "closing_text"
	keyFooterText  = "footer_text"
)

// LayoutStrings returns the untranslated layout strings.
func LayoutStrings() map[string]string {
	return map[string]string{
		keyButtonText:  "Click Here to Review",
		keyClosingText: "Thank you for your valuable feedback. We appreciate your time and trust in our service.",
		keyFooterText:  "You received this email because you recently ordered from us.",
	}
}

const layoutTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{ subject | escape }}</title>
</head>
<body style="margin:0;padding:0;background:#f4f4f7;font-family:Arial,Helvetica,sans-serif;color:#333333;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
<tr><td align="center" style="padding:24px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;">
<tr><td style="padding:32px;font-size:15px;line-height:1.6;">{{ body | escape | newline_to_br }}</td></tr>
<tr><td align="center" style="padding:0 32px 32px;">
<a href="{{ review_link }}" style="display:inline-block;padding:14px 28px;background:#2563eb;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:bold;">{{ strings.button_text | escape }}</a>
</td></tr>
<tr><td style="padding:0 32px 32px;font-size:14px;">{{ strings.closing_text | escape }}</td></tr>
</table>
<p style="font-size:12px;color:#8a8a8a;">{{ strings.footer_text | escape }}</p>
</td></tr>
</table>
</body>
</html>`

// RenderedEmail is one recipient's personalized campaign email.
type RenderedEmail struct {
	Subject string
	// Body is the full rendered text, review link included.
	Body string
	// BodyWithoutLink is Body with the bare review link removed; the HTML
	// layout shows a button instead.
	BodyWithoutLink string
	ReviewLink      string
}

// Renderer substitutes recipient placeholders and lays out the HTML email.
type Renderer struct {
	reviewBaseURL string
	layout        *liquid.Template
}

func NewRenderer(reviewBaseURL string) (*Renderer, error) {
	engine := liquid.NewEngine()
	layout, err := engine.ParseString(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email layout: %w", err)
	}
	return &Renderer{
		reviewBaseURL: strings.TrimRight(reviewBaseURL, "/"),
		layout:        layout,
	}, nil
}

// ReviewLink is the public review page for a recipient token.
func (r *Renderer) ReviewLink(recipient store.MailingRecipient) string {
	return r.LinkForToken(recipient.ReviewToken)
}

// LinkForToken is the public review page for any review token.
func (r *Renderer) LinkForToken(token uuid.UUID) string {
	return fmt.Sprintf("%s/review/%s", r.reviewBaseURL, token)
}

// Personalize fills the campaign template for one recipient.
func (r *Renderer) Personalize(campaign store.MailingCampaign, recipient store.MailingRecipient, companyName string) RenderedEmail {
	customerName := DefaultCustomerName
	if recipient.CustomerName != nil && strings.TrimSpace(*recipient.CustomerName) != "" {
		customerName = *recipient.CustomerName
	}
	orderNumber := ""
	if recipient.OrderNumber != nil {
		orderNumber = *recipient.OrderNumber
	}
	link := r.ReviewLink(recipient)

	replacer := strings.NewReplacer(
		placeholderCustomerName, customerName,
		placeholderOrderNumber, orderNumber,
		placeholderCompanyName, companyName,
		placeholderReviewLink, link,
	)

	body := replacer.Replace(campaign.Body)
	return RenderedEmail{
		Subject:         replacer.Replace(campaign.Subject),
		Body:            body,
		BodyWithoutLink: strings.TrimSpace(strings.ReplaceAll(body, link, "")),
		ReviewLink:      link,
	}
}

// HTML renders the layout around the email. strs holds the layout strings.
func (r *Renderer) HTML(email RenderedEmail, strs map[string]string) (string, error) {
	out, err := r.layout.RenderString(liquid.Bindings{
		"subject":     email.Subject,
		"body":        email.BodyWithoutLink,
		"review_link": email.ReviewLink,
		"strings":     strs,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email layout: %w", err)
	}
	return out, nil
}
