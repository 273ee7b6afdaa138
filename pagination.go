package metigan

import "github.com/metigan/metigan-go/internal/api"

// MaxPageLimit is the largest page size the API accepts.
const MaxPageLimit = 100

// ListOptions selects one page of a list. Zero values leave the choice to
// the server.
type ListOptions struct {
	Page  int
	Limit int
}

// Pagination describes the page returned by a list call.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

func (o ListOptions) validate() error {
	if o.Page < 0 {
		return validationError("page must be at least 1, got %d", o.Page)
	}
	if o.Limit < 0 || o.Limit > MaxPageLimit {
		return validationError("limit must be between 1 and %d, got %d", MaxPageLimit, o.Limit)
	}
	return nil
}

func (o ListOptions) params() api.ListParams {
	return api.ListParams{Page: o.Page, Limit: o.Limit}
}

func listParams(opts *ListOptions) (api.ListParams, error) {
	if opts == nil {
		return api.ListParams{}, nil
	}
	if err := opts.validate(); err != nil {
		return api.ListParams{}, err
	}
	return opts.params(), nil
}

func paginationFromDTO(dto api.PaginationDTO) Pagination {
	return Pagination{
		Page:  dto.Page,
		Limit: dto.Limit,
		Total: dto.Total,
		Pages: dto.TotalPages,
	}
}
