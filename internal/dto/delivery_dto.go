package dto

import "birthplan-agent-be/pkg/plan"

// PublishPlanExportMessage travels over the in-process bus from the export
// endpoint to the email delivery consumer.
type PublishPlanExportMessage struct {
	Email    string               `json:"email"`
	Document *plan.ExportDocument `json:"document"`
}
