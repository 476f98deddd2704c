package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Name          string
	Email         string
	Password      string
	EmailVerified string
	Image         string
	Bio           string
	Role          string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Name:          "name",
	Email:         "email",
	Password:      "passwordhash",
	EmailVerified: "emailverified",
	Image:         "image",
	Bio:           "bio",
	Role:          "role",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.EmailVerified,
		t.Image, t.Bio, t.Role, t.CreatedAt, t.UpdatedAt,
	}
}
