package models

// AccessFlag is one permission bit in a user's access level.
// A user with no flags set has read-only access.
type AccessFlag int

const (
	MarkAsDone     AccessFlag = 1 << iota // mark jobs done and revert them
	EditMaximums                          // edit the daily plate maximums
	HoldOrders                            // place an order on hold
	CancelOrders                          // remove an order entirely
	ChangePassword                        // change other users' passwords
	AddUser
	DeleteUser
	UserPrivileges // update any user's access flags

	AllAccess AccessFlag = 1<<8 - 1
)

// User is a login account. HashPass holds a bcrypt hash, never plain text.
type User struct {
	UserName    string
	HashPass    string
	AccessFlags AccessFlag
}

// Can reports whether every bit of flag is granted to the user
func (u *User) Can(flag AccessFlag) bool {
	return u.AccessFlags&flag == flag
}
