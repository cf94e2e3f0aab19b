package domain

// View identifies a navigable screen of the client by its path.
type View string

const (
	ViewHome         View = "/"
	ViewLogin        View = "/login"
	ViewRegister     View = "/register"
	ViewAccount      View = "/account"
	ViewCustomerHome View = "/customer"
	ViewAdminHome    View = "/admin"
)

// HomeFor returns the landing view for a role after a successful login or
// registration. ok is false for roles without a landing view, in which case
// no navigation should happen.
func HomeFor(role Role) (View, bool) {
	switch role {
	case RoleCustomer:
		return ViewCustomerHome, true
	case RoleAdmin:
		return ViewAdminHome, true
	default:
		return "", false
	}
}
