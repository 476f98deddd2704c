package schema

// UserVerificationTokenTable represents the 'users.verificationtoken' table
type UserVerificationTokenTable struct {
	Table      string
	Identifier string
	Token      string
	Expires    string
	CreatedAt  string
}

// UserVerificationToken is the schema definition for users.verificationtoken
var UserVerificationToken = UserVerificationTokenTable{
	Table:      "users.verificationtoken",
	Identifier: "identifier",
	Token:      "token",
	Expires:    "expires",
	CreatedAt:  "createdat",
}
