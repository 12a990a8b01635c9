package repository

// page/pageSize（1始まり）
type Page struct {
	Page     int
	PageSize int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
