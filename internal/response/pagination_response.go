package response

const defaultPageSize = 20

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

func normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// NewPagination computes the envelope for one page of a list of
// totalItems. From/To are 1-based and both zero for an empty page.
func NewPagination(page, pageSize int, totalItems int64) *Pagination {
	page, pageSize = normalize(page, pageSize)
	totalPages := (totalItems + int64(pageSize) - 1) / int64(pageSize)

	from, to := 0, 0
	start := int64(page-1) * int64(pageSize)
	if start < totalItems {
		from = int(start) + 1
		to = int(start) + pageSize
		if int64(to) > totalItems {
			to = int(totalItems)
		}
	}

	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}

// Page returns the slice of items belonging to the given page. Out of
// range pages yield an empty slice.
func Page[T any](items []T, page, pageSize int) []T {
	page, pageSize = normalize(page, pageSize)
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
