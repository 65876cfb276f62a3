package domain

import "time"

// Document is deal-locker file metadata. Bytes live in the blob store
// under StorageKey; FileURL is the public retrieval path.
type Document struct {
	ID         string
	DealID     string
	FileName   string
	StorageKey string
	FileURL    string
	FileSize   int64
	FileType   string
	UploadedBy string
	CreatedAt  time.Time
}
