package request

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PaginatedRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p PaginatedRequest) CurrentPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p PaginatedRequest) Offset() int {
	return (p.CurrentPage() - 1) * p.PageLimit()
}

func (p PaginatedRequest) PageLimit() int {
	if p.Limit < 1 {
		return DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return p.Limit
}
