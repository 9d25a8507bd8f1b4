package constvars

const (
	UploadFileSuccessMessage  = "File uploaded successfully"
	DownloadURLSuccessMessage = "Download URL generated successfully"
	DeleteFileSuccessMessage  = "File deleted successfully"
	ListFilesSuccessMessage   = "Files retrieved successfully"
	GetIdentitySuccessMessage = "Profile retrieved successfully"
	HealthCheckSuccessMessage = "OK"
)

const ResponseUnknown = "unknown"
