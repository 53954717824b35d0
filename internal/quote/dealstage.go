package quote

import "github.com/coverdesk/api-operations/internal/deal"

// dealStageFor is the explicit quote-status to deal-stage table. The stage is
// a function of the new status only; the old status matters solely for the
// changed/unchanged check in UpdateStatus.
var dealStageFor = map[string]string{
	StatusDraft:    deal.StageQuote,
	StatusPending:  deal.StageQuote,
	StatusApproved: deal.StageNegotiation,
	StatusAccepted: deal.StageClosedWon,
	StatusRejected: deal.StageClosedLost,
	StatusExpired:  deal.StageClosedLost,
}

// DealStageFor returns the pipeline stage a linked deal should move to when a
// quote enters the given status, and whether a mapping exists.
func DealStageFor(status string) (string, bool) {
	stage, ok := dealStageFor[status]
	return stage, ok
}
