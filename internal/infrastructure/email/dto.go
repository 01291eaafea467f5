package email

// ClaimAlertData carries everything the alert template needs.
type ClaimAlertData struct {
	ClaimID        string
	InfluencerName string
	ClaimText      string
	OldStatus      string
	NewStatus      string
	Recipients     []string
}
