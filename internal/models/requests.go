package models

// AnalyzeRequest is the body of POST /analyze. JD is the field name the
// original web client sends; JobDescription wins when both are set.
type AnalyzeRequest struct {
	Resume           string `json:"resume"`
	JobDescription   string `json:"job_description"`
	JD               string `json:"jd"`
	JobDescriptionID string `json:"job_description_id" validate:"omitempty,uuid"`
}

func (r *AnalyzeRequest) JobDescriptionText() string {
	if r.JobDescription != "" {
		return r.JobDescription
	}
	return r.JD
}

type ExtractTextResponse struct {
	Text string `json:"text"`
}

type ExtractTextError struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type CreateJobDescriptionRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=100000"`
}

type SearchJobDescriptionsRequest struct {
	Resume string `json:"resume" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type JobMatch struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Similarity float32 `json:"similarity"`
}

type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
