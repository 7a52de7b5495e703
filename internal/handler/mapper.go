package handler

import (
	"time"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func domainPRToHTTP(pr *domain.PullRequest) PullRequestResponse {
	return PullRequestResponse{
		PullRequestID: pr.ID,
		RepoFullName:  pr.RepoFullName,
		Number:        pr.Number,
		Title:         pr.Title,
		HeadSHA:       pr.HeadSHA,
		CreatedAt:     formatTime(pr.CreatedAt),
	}
}

func httpPRToDomain(req RegisterPRRequest) *domain.PullRequest {
	return &domain.PullRequest{
		RepoFullName: req.RepoFullName,
		Number:       req.Number,
		Title:        req.Title,
		HeadSHA:      req.HeadSHA,
	}
}

func domainReviewToHTTP(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ReviewID:      review.ID,
		PullRequestID: review.PullRequestID,
		Status:        string(review.Status),
		CreatedAt:     formatTime(review.CreatedAt),
		StartedAt:     formatTime(review.StartedAt),
		DurationMs:    review.DurationMs,
	}
}

func domainReviewsToHTTP(reviews []*domain.Review) ReviewsResponse {
	result := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, domainReviewToHTTP(review))
	}
	return ReviewsResponse{Reviews: result}
}

func domainFindingToHTTP(finding *domain.Finding) FindingResponse {
	return FindingResponse{
		FindingID: finding.ID,
		ReviewID:  finding.ReviewID,
		Type:      string(finding.Type),
		Severity:  string(finding.Severity),
		File:      finding.File,
		Line:      finding.Line,
		Message:   finding.Message,
		CommentID: finding.CommentID,
		CreatedAt: formatTime(finding.CreatedAt),
	}
}

func domainFindingsToHTTP(findings []*domain.Finding) FindingsResponse {
	result := make([]FindingResponse, 0, len(findings))
	for _, finding := range findings {
		result = append(result, domainFindingToHTTP(finding))
	}
	return FindingsResponse{Findings: result}
}

func httpFindingsToDomain(reqs []FindingRequest) ([]*domain.Finding, error) {
	findings := make([]*domain.Finding, 0, len(reqs))
	for _, req := range reqs {
		findingType, err := domain.ParseFindingType(req.Type)
		if err != nil {
			return nil, err
		}
		severity, err := domain.ParseSeverityLevel(req.Severity)
		if err != nil {
			return nil, err
		}
		findings = append(findings, &domain.Finding{
			Type:     findingType,
			Severity: severity,
			File:     req.File,
			Line:     req.Line,
			Message:  req.Message,
		})
	}
	return findings, nil
}

func domainStatsToHTTP(stats *domain.Stats) StatsResponse {
	response := StatsResponse{
		ReviewsByStatus:        make([]StatusCountResponse, len(stats.ReviewsByStatus)),
		AverageDurationMs:      stats.AverageDurationMs,
		MostCommonFindingTypes: make([]FindingTypeCountResponse, len(stats.MostCommonFindingTypes)),
	}

	for i, stat := range stats.ReviewsByStatus {
		response.ReviewsByStatus[i] = StatusCountResponse{
			Status: string(stat.Status),
			Count:  stat.Count,
		}
	}

	for i, stat := range stats.MostCommonFindingTypes {
		response.MostCommonFindingTypes[i] = FindingTypeCountResponse{
			Type:  string(stat.Type),
			Count: stat.Count,
		}
	}

	return response
}
