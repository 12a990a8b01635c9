package usecase

import repo "farmmall/internal/repository"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// 一覧のレスポンス
type PageResult[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// page/pageSize の補正（不正値はデフォルト）
func NormalizePage(page, pageSize int) repo.Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return repo.Page{Page: page, PageSize: pageSize}
}
