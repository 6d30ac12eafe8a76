package api

// Request payloads. Attribute names match the stored item shapes so clients
// can round-trip records they fetched.

type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       string  `json:"email"`
	Description *string `json:"description"`
	Picture     *string `json:"picture"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Description *string `json:"description"`
	Picture     *string `json:"picture"`
}

type PasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type RecipeRequest struct {
	UUID         string   `json:"uuid"`
	RecipeThumb  string   `json:"recipeThumb"`
	RecipeName   string   `json:"recipeName"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// CommentRequest binds rating loosely so a non-numeric value can be rejected
// with the rating failure message instead of a generic body error.
type CommentRequest struct {
	RecipeUUID  string `json:"recipeUuid"`
	Description string `json:"description"`
	Rating      any    `json:"rating"`
}

// ratingValue narrows the loosely bound rating field. ok is false when the
// value is present but not a JSON number.
func ratingValue(v any) (rating *float64, ok bool) {
	switch n := v.(type) {
	case nil:
		return nil, true
	case float64:
		return &n, true
	}
	return nil, false
}
