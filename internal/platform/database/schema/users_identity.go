package schema

// UserIdentityTable represents the 'users.identity' table (linked external sign-in providers)
type UserIdentityTable struct {
	Table             string
	ID                string
	UserID            string
	Provider          string
	ProviderAccountID string
	CreatedAt         string
}

// UserIdentity is the schema definition for users.identity
var UserIdentity = UserIdentityTable{
	Table:             "users.identity",
	ID:                "id",
	UserID:            "userid",
	Provider:          "provider",
	ProviderAccountID: "provideraccountid",
	CreatedAt:         "createdat",
}
