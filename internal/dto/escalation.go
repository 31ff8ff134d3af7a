package dto

type EscalationResponse struct {
	ID           string `json:"id"`
	StudentQuery string `json:"student_query"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	AdminNotes   string `json:"admin_notes"`
	CreatedAt    string `json:"created_at"`
}

type UpdateEscalationRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending in-progress resolved"`
	AdminNotes string `json:"admin_notes"`
}

type StatsResponse struct {
	TotalFAQs        int64 `json:"total_faqs"`
	TotalEscalated   int64 `json:"total_escalated"`
	PendingEscalated int64 `json:"pending_escalated"`
	DocumentPassages int64 `json:"document_passages"`
	ExamEntries      int64 `json:"exam_entries"`
	FeeEntries       int64 `json:"fee_entries"`
}
