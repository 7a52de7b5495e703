package domain

import "time"

type PullRequest struct {
	ID           string
	RepoFullName string
	Number       int
	Title        string
	HeadSHA      string
	CreatedAt    time.Time
}
