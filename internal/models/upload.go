package models

// UploadedFile — метаданные принятого файла (временная копия уже на диске).
type UploadedFile struct {
	FieldName    string `json:"fieldName"`
	OriginalName string `json:"originalFilename"`
	TempPath     string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"type"`
}

// StoredFile — результат переноса файла в постоянное хранилище.
type StoredFile struct {
	Path      string `json:"path"`
	PublicURL string `json:"publicURL"`
}

// swagger:model UploadResponse
type UploadResponse struct {
	UploadedURL  string `json:"uploadedURL"`
	UploadedFile string `json:"uploadedFile"`
	File         string `json:"file"`
	Message      string `json:"message"`
}
