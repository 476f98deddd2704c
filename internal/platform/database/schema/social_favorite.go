package schema

// SocialFavoriteTable represents the 'social.favorite' table
type SocialFavoriteTable struct {
	Table     string
	ID        string
	UserID    string
	RecipeID  string
	CreatedAt string
}

// SocialFavorite is the schema definition for social.favorite
var SocialFavorite = SocialFavoriteTable{
	Table:     "social.favorite",
	ID:        "id",
	UserID:    "userid",
	RecipeID:  "recipeid",
	CreatedAt: "createdat",
}
