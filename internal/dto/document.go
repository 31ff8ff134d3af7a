package dto

type UploadDocumentResponse struct {
	FileName string `json:"file_name"`
	Pages    int    `json:"pages"`
	Chunks   int    `json:"chunks"`
}
