package entity

import "fmt"

// UserType is the role tag shared by every account.
type UserType string

const (
	UserTypeCustomer        UserType = "customer"
	UserTypeRestaurantOwner UserType = "restaurant_owner"
	UserTypeDriver          UserType = "driver"
	UserTypeAdmin           UserType = "admin"
)

func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeCustomer, UserTypeRestaurantOwner, UserTypeDriver, UserTypeAdmin:
		return UserType(s), nil
	}
	return "", fmt.Errorf("invalid user type: %q", s)
}

func (t UserType) String() string { return string(t) }
