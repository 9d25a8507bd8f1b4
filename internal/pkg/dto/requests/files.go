package requests

// UploadFileRequest carries the multipart fields accompanying the file
// part. The patient ID is the provider's user UUID.
type UploadFileRequest struct {
	PatientID string `validate:"required,uuid"`
	Filename  string `validate:"required"`
}
