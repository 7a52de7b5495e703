package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InfoResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type RegisterPRRequest struct {
	RepoFullName string `json:"repo_full_name" validate:"required"`
	Number       int    `json:"number" validate:"gt=0"`
	Title        string `json:"title"`
	HeadSHA      string `json:"head_sha"`
}

type PullRequestResponse struct {
	PullRequestID string `json:"pull_request_id"`
	RepoFullName  string `json:"repo_full_name"`
	Number        int    `json:"number"`
	Title         string `json:"title"`
	HeadSHA       string `json:"head_sha,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type FindingRequest struct {
	Type     string `json:"type" validate:"required"`
	Severity string `json:"severity" validate:"required"`
	File     string `json:"file" validate:"required"`
	Line     int    `json:"line" validate:"gte=0"`
	Message  string `json:"message"`
}

type FinishReviewRequest struct {
	Status   string           `json:"status" validate:"required"`
	Findings []FindingRequest `json:"findings" validate:"dive"`
}

type ReviewResponse struct {
	ReviewID      string `json:"review_id"`
	PullRequestID string `json:"pull_request_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	StartedAt     string `json:"startedAt"`
	DurationMs    *int64 `json:"durationMs,omitempty"`
}

type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

type FindingResponse struct {
	FindingID string `json:"finding_id"`
	ReviewID  string `json:"review_id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Message   string `json:"message"`
	CommentID *int64 `json:"comment_id"`
	CreatedAt string `json:"createdAt"`
}

type FindingsResponse struct {
	Findings []FindingResponse `json:"findings"`
}

type FindingCountResponse struct {
	ReviewID string `json:"review_id"`
	Type     string `json:"type"`
	Count    int64  `json:"count"`
}

type MarkCommentedRequest struct {
	CommentID int64 `json:"comment_id" validate:"gt=0"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type FindingTypeCountResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type StatsResponse struct {
	ReviewsByStatus        []StatusCountResponse      `json:"reviews_by_status"`
	AverageDurationMs      *float64                   `json:"average_duration_ms"`
	MostCommonFindingTypes []FindingTypeCountResponse `json:"most_common_finding_types"`
}
