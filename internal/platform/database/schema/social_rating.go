package schema

// SocialRatingTable represents the 'social.rating' table
type SocialRatingTable struct {
	Table     string
	ID        string
	UserID    string
	RecipeID  string
	Rating    string
	Comment   string
	CreatedAt string
	UpdatedAt string
}

// SocialRating is the schema definition for social.rating
var SocialRating = SocialRatingTable{
	Table:     "social.rating",
	ID:        "id",
	UserID:    "userid",
	RecipeID:  "recipeid",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
