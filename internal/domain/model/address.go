package model

import "strings"

// 注文の配送先（orders.address にJSONで保存）
type Address struct {
	//宛名
	Name string `json:"name"`
	//電話番号
	Phone string `json:"phone"`
	//省
	Province string `json:"province"`
	//市
	City string `json:"city"`
	//区
	District string `json:"district"`
	//番地など
	Detail string `json:"detail"`
}

// 宛名・電話・番地は必須
func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Phone) != "" &&
		strings.TrimSpace(a.Detail) != ""
}
