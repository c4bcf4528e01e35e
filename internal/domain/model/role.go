package model

// 役割は整数ID（DBのidRole互換）
type Role int

const (
	RoleAdmin    Role = 1
	RoleCustomer Role = 2
	RoleStaff    Role = 3
)

// 不明なIDは必ずCUSTOMERに落とす（権限は絶対に上げない）
func RoleFromID(id int) Role {
	switch Role(id) {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return Role(id)
	default:
		return RoleCustomer
	}
}

// 役割ごとのホーム画面パス
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStaff:
		return "/staff"
	default:
		return "/customer"
	}
}

// 表示用の役割名
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	default:
		return "Customer"
	}
}
