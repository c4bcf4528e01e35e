package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromID_KnownRoles(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFromID(1))
	assert.Equal(t, RoleCustomer, RoleFromID(2))
	assert.Equal(t, RoleStaff, RoleFromID(3))
}

// 不明なIDは常にCUSTOMER（権限を上げない）
func TestRoleFromID_UnknownFallsBackToCustomer(t *testing.T) {
	for _, id := range []int{0, -1, -99, 4, 7, 100} {
		assert.Equal(t, RoleCustomer, RoleFromID(id), "id=%d", id)
	}
}

// どんな整数でも必ず値が返る（panicしない）
func TestRole_HomeRouteAndDisplayName_Total(t *testing.T) {
	cases := []struct {
		id    int
		route string
		name  string
	}{
		{1, "/admin", "Admin"},
		{2, "/customer", "Customer"},
		{3, "/staff", "Staff"},
		{0, "/customer", "Customer"},
		{-5, "/customer", "Customer"},
		{999, "/customer", "Customer"},
	}

	for _, tc := range cases {
		r := RoleFromID(tc.id)
		assert.Equal(t, tc.route, r.HomeRoute(), "id=%d", tc.id)
		assert.Equal(t, tc.name, r.DisplayName(), "id=%d", tc.id)
	}
}
