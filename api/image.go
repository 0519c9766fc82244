package api

// UploadResponse is the body returned for a successful upload.
type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ImageResponse is one row of a listing page.
type ImageResponse struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	SizeKB       int64  `json:"size_kb"`
	UploadTime   string `json:"upload_time"`
	FileType     string `json:"file_type"`
	URL          string `json:"url"`
}

// PaginationResponse summarizes where a listing page sits in the full set.
type PaginationResponse struct {
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// ListResponse is the body of GET /images-list.
type ListResponse struct {
	Status     string             `json:"status"`
	Page       int                `json:"page"`
	Pagination PaginationResponse `json:"pagination"`
	Data       []ImageResponse    `json:"data"`
}

// StatusResponse is the generic success/error envelope.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
