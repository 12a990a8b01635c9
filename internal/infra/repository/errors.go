package repository

import (
	"errors"

	repo "farmmall/internal/repository"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// gormのエラーをrepository層のエラーへ寄せる
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	default:
		return err
	}
}

// 部分一致用（sqliteでも動くようにLOWERで比較）
func likePattern(s string) string {
	return "%" + s + "%"
}

func pageSize(p repo.Page) int {
	if p.PageSize <= 0 {
		return 10
	}
	return p.PageSize
}
