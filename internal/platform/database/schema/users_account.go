package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	Role             string
	IsStaff          string
	Bio              string
	FirstName        string
	LastName         string
	ConfirmationCode string
	CreatedAt        string
	UpdatedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	Role:             "role",
	IsStaff:          "isstaff",
	Bio:              "bio",
	FirstName:        "firstname",
	LastName:         "lastname",
	ConfirmationCode: "confirmationcode",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.IsStaff, t.Bio,
		t.FirstName, t.LastName, t.ConfirmationCode, t.CreatedAt, t.UpdatedAt,
	}
}
