package filters

// PageSize is the number of items on every page of a list endpoint.
const PageSize = 3

type Filters struct {
	Page     int
	PageSize int
}

func New(page int) Filters {
	return Filters{Page: page, PageSize: PageSize}
}

func (f Filters) Limit() int {
	return f.PageSize
}

func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// LastPage returns the number of the last valid page for totalRecords.
// An empty result set still has one (empty) page.
func (f Filters) LastPage(totalRecords int) int {
	if totalRecords <= 0 {
		return 1
	}
	return (totalRecords + f.PageSize - 1) / f.PageSize
}
