package request

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type PaginatedRequest struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// NewPaginatedRequest clamps page and limit into their valid ranges.
func NewPaginatedRequest(page, limit int) PaginatedRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginatedRequest{Page: page, Limit: limit}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
