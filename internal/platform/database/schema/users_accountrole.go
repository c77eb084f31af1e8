package schema

// AccountRoleTable represents the 'users.accountrole' table
type AccountRoleTable struct {
	Table     string
	AccountID string
	RoleID    string
}

// AccountRole is the schema definition for users.accountrole
var AccountRole = AccountRoleTable{
	Table:     "users.accountrole",
	AccountID: "accountid",
	RoleID:    "roleid",
}
