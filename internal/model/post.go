package model

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostRequest struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm" form:"searchTerm"`
}

// PostPage is one page of the reverse-chronological post listing.
type PostPage struct {
	Items       []Post `json:"items"`
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
	Total       int64  `json:"total"`
	HasNextPage bool   `json:"hasNextPage"`
}

// NextPage returns the following page number, or 0 when there is none.
func (p *PostPage) NextPage() int {
	if !p.HasNextPage {
		return 0
	}
	return p.Page + 1
}
