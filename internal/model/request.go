package model

// PresignUploadRequest is the JSON body sent to the upload presign endpoint.
// ObjectKey is optional; when absent a collision-resistant key is derived
// from Filename.
type PresignUploadRequest struct {
	Filename    string `json:"filename"`
	ObjectKey   string `json:"objectKey,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// PresignDownloadRequest is the JSON body sent to the download presign
// endpoint.
type PresignDownloadRequest struct {
	ObjectKey string `json:"objectKey"`
	Bucket    string `json:"bucket,omitempty"`
}
