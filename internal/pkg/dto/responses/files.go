package responses

import "time"

// StoredObjectInfo describes one object in the documents bucket.
type StoredObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

type UploadFileResponse struct {
	Key       string `json:"key"`
	PatientID string `json:"patient_id"`
	Size      int64  `json:"size"`
}

type DownloadURLResponse struct {
	Key              string `json:"key"`
	URL              string `json:"url"`
	ExpiresInSeconds int    `json:"expires_in"`
}

type ListFilesResponse struct {
	PatientID string             `json:"patient_id"`
	Files     []StoredObjectInfo `json:"files"`
}
