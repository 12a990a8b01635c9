package model

import "github.com/google/uuid"

// 主キーが空ならUUIDを振る
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
