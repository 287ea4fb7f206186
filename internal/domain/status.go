package domain

// CampaignStatus is the lifecycle state of a DigiZign marketing campaign.
type CampaignStatus string

const (
	CampaignStatusPlanned   CampaignStatus = "PLANNED"
	CampaignStatusLive      CampaignStatus = "LIVE_CAMPAIGN"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
)

// ParseCampaignStatus validates a raw string against the closed status set.
func ParseCampaignStatus(raw string) (CampaignStatus, bool) {
	switch CampaignStatus(raw) {
	case CampaignStatusPlanned, CampaignStatusLive, CampaignStatusPaused, CampaignStatusCompleted:
		return CampaignStatus(raw), true
	}
	return "", false
}

func (s CampaignStatus) String() string {
	return string(s)
}

// ProposalStatus is the lifecycle state of a ZureLabs proposal.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "PENDING"
	ProposalStatusSent     ProposalStatus = "SENT"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusRejected ProposalStatus = "REJECTED"
	ProposalStatusPaid     ProposalStatus = "PAID"
)

// ParseProposalStatus validates a raw string against the closed status set.
func ParseProposalStatus(raw string) (ProposalStatus, bool) {
	switch ProposalStatus(raw) {
	case ProposalStatusPending, ProposalStatusSent, ProposalStatusAccepted,
		ProposalStatusRejected, ProposalStatusPaid:
		return ProposalStatus(raw), true
	}
	return "", false
}

func (s ProposalStatus) String() string {
	return string(s)
}
