package store

import "strings"

// MailingCampaignStatus is the campaign state machine: draft -> sending -> sent | failed.
type MailingCampaignStatus string

const (
	MailingCampaignStatusDraft   MailingCampaignStatus = "draft"
	MailingCampaignStatusSending MailingCampaignStatus = "sending"
	MailingCampaignStatusSent    MailingCampaignStatus = "sent"
	MailingCampaignStatusFailed  MailingCampaignStatus = "failed"
)

// MailingRecipientStatus is the per-recipient delivery state.
type MailingRecipientStatus string

const (
	MailingRecipientStatusPending   MailingRecipientStatus = "pending"
	MailingRecipientStatusSent      MailingRecipientStatus = "sent"
	MailingRecipientStatusDelivered MailingRecipientStatus = "delivered"
	MailingRecipientStatusOpened    MailingRecipientStatus = "opened"
	MailingRecipientStatusClicked   MailingRecipientStatus = "clicked"
	MailingRecipientStatusReviewed  MailingRecipientStatus = "reviewed"
	MailingRecipientStatusFailed    MailingRecipientStatus = "failed"
)

// ReviewProvenance records the intake channel of a review.
type ReviewProvenance string

const (
	ReviewProvenanceOnline  ReviewProvenance = "online"
	ReviewProvenanceOffline ReviewProvenance = "offline"
	ReviewProvenanceManual  ReviewProvenance = "manual"
)

type Recommend string

const (
	RecommendYes Recommend = "yes"
	RecommendNo  Recommend = "no"
)

// ParseRecommend accepts "yes" or "no" in any case, ignoring surrounding space.
func ParseRecommend(s string) (Recommend, bool) {
	r := Recommend(strings.ToLower(strings.TrimSpace(s)))
	return r, r == RecommendYes || r == RecommendNo
}
