package dto

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type DocumentOffer struct {
	FileName    string `json:"file_name"`
	DisplayName string `json:"display_name"`
	DownloadURL string `json:"download_url"`
}

type ChatResponse struct {
	Escalated bool            `json:"escalated"`
	Answer    string          `json:"answer"`
	Documents []DocumentOffer `json:"documents"`
}
