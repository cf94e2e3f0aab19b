package service

import "github.com/99minutos/storefront/internal/core/domain"

// Route is the static configuration of a navigable view. A zero RequiredRole
// means the route is only subject to authentication, and Public routes skip
// both gates.
type Route struct {
	View         domain.View
	Public       bool
	RequiredRole domain.Role
}

// Routes is the client's route table.
var Routes = []Route{
	{View: domain.ViewHome, Public: true},
	{View: domain.ViewLogin, Public: true},
	{View: domain.ViewRegister, Public: true},
	{View: domain.ViewAccount},
	{View: domain.ViewCustomerHome, RequiredRole: domain.RoleCustomer},
	{View: domain.ViewAdminHome, RequiredRole: domain.RoleAdmin},
}
