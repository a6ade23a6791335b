package model

// IngestResponse is returned on a successful metadata POST.
type IngestResponse struct {
	ObjectKey string `json:"objectKey"`
	CreatedAt string `json:"createdAt"`
}

// DatasetResponse is the result of a full dataset scan.
type DatasetResponse struct {
	Items        []map[string]any `json:"items"`
	Count        int              `json:"count"`
	ScannedCount int              `json:"scannedCount"`
}

// DatasetItemResponse wraps a single record lookup.
type DatasetItemResponse struct {
	Item map[string]any `json:"item"`
}

// PresignUploadResponse is returned with a PUT-scoped signed URL. Headers
// echoes the Content-Type the upload must carry when one was requested.
type PresignUploadResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	ObjectKey string            `json:"objectKey"`
	Bucket    string            `json:"bucket"`
	ExpiresIn int               `json:"expiresIn"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// PresignDownloadResponse is returned with a GET-scoped signed URL.
type PresignDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Method      string `json:"method"`
	ObjectKey   string `json:"objectKey"`
	Bucket      string `json:"bucket"`
	ExpiresIn   int    `json:"expiresIn"`
}

// MessageResponse is returned for any failed API request.
type MessageResponse struct {
	Message string `json:"message"`
}
