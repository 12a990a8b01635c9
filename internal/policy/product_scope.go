// Package policy decides which products a back-office account may see and change.
package policy

import "farmmall/internal/domain/model"

// リクエストごとに1回だけ作る
type ProductScope struct {
	AdminID string
	Role    model.Role
}

func NewProductScope(adminID string, role model.Role) ProductScope {
	return ProductScope{AdminID: adminID, Role: role}
}

// merchantだけ作成者で絞る
func (s ProductScope) OwnerFilter() *string {
	if s.Role == model.RoleMerchant {
		id := s.AdminID
		return &id
	}
	return nil
}

func (s ProductScope) IsMerchant() bool {
	return s.Role == model.RoleMerchant
}

// 商品を操作してよいか
func (s ProductScope) Allows(p model.Product) bool {
	switch s.Role {
	case model.RoleAdmin:
		return true
	case model.RoleMerchant:
		return p.CreatedBy == s.AdminID
	default:
		return false
	}
}
