package dto

import "time"

// DocumentResponse exposes deal-locker file metadata.
type DocumentResponse struct {
	ID           string    `json:"id"`
	DealID       string    `json:"dealId"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileUrl"`
	FileSize     int64     `json:"fileSize"`
	FileType     string    `json:"fileType"`
	UploadedBy   string    `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
