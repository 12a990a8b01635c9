package repository

import "errors"

// gorm.ErrRecordNotFound はここで吸収する
var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")
