package schema

// CoreRecipeTable represents the 'core.recipe' table
type CoreRecipeTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	Images       string
	PrepTime     string
	CookTime     string
	Servings     string
	Difficulty   string
	Category     string
	UserID       string
	CreatedAt    string
	UpdatedAt    string
}

// CoreRecipe is the schema definition for core.recipe
var CoreRecipe = CoreRecipeTable{
	Table:        "core.recipe",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	Ingredients:  "ingredients",
	Instructions: "instructions",
	Images:       "images",
	PrepTime:     "preptime",
	CookTime:     "cooktime",
	Servings:     "servings",
	Difficulty:   "difficulty",
	Category:     "category",
	UserID:       "userid",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CoreRecipeTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Ingredients, t.Instructions, t.Images,
		t.PrepTime, t.CookTime, t.Servings, t.Difficulty, t.Category,
		t.UserID, t.CreatedAt, t.UpdatedAt,
	}
}
