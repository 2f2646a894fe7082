package dto

import (
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
)

// CreateRecordRequest is the POST /record payload. Validation tags are
// evaluated in field order by the service validator, so the first violated
// constraint is the one reported.
type CreateRecordRequest struct {
	Mood      string   `json:"mood" validate:"required,max=50"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Timestamp string   `json:"timestamp" validate:"required,notblank"`
	VlogFile  *string  `json:"vlog_file"`
	Note      *string  `json:"note" validate:"omitempty,max=500"`
}

type ListQuery struct {
	Limit int64  `form:"limit,default=100"`
	Skip  int64  `form:"skip,default=0"`
	Mood  string `form:"mood"`
}

type RecordResponse struct {
	Status       string `json:"status"`
	ID           string `json:"id,omitempty"`
	Deleted      string `json:"deleted,omitempty"`
	DeletedCount *int64 `json:"deleted_count,omitempty"`
}

type ListRecordsResponse struct {
	Records []*entities.Record `json:"records"`
	Count   int                `json:"count"`
}

type UploadVideoResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
	URL    string `json:"url"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}
