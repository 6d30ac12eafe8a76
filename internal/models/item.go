package models

import (
	"time"

	"github.com/google/uuid"
)

// Item type discriminators. Every record in the RecipeExplorer table carries
// exactly one of these in its "type" attribute.
const (
	TypeUser    = "user"
	TypeRecipe  = "recipe"
	TypeComment = "comment"
)

// Item is the raw, schemaless shape of a record in the shared table. The
// store has no schema enforcement, so callers must narrow on the "type" tag
// (AsUser/AsRecipe/AsComment) before treating an item as a given entity.
type Item map[string]any

// UUID returns the item's primary key, or "" if absent.
func (it Item) UUID() string {
	return it.Str("uuid")
}

// Type returns the item's discriminator tag, or "" if absent.
func (it Item) Type() string {
	return it.Str("type")
}

// Str returns the string value stored under key, or "" when the key is
// absent, null, or not a string.
func (it Item) Str(key string) string {
	s, _ := it[key].(string)
	return s
}

// Int returns the integer value stored under key. DynamoDB numbers decode as
// float64 when the target is an interface, so both shapes are accepted.
func (it Item) Int(key string) int64 {
	switch v := it[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Strings returns the list of strings stored under key. Lists round-tripped
// through the store decode as []any.
func (it Item) Strings(key string) []string {
	switch v := it[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Redacted returns a shallow copy of the item with the password attribute
// removed. Every other attribute, including nulls, passes through verbatim.
// This is the only sanctioned way to hand a user record to a caller.
func (it Item) Redacted() Item {
	out := make(Item, len(it))
	for k, v := range it {
		if k == "password" {
			continue
		}
		out[k] = v
	}
	return out
}

// User is the narrowed shape of a "user" item. Password holds the bcrypt
// hash, never plaintext. Description and Picture are nullable.
type User struct {
	UUID         string  `json:"uuid"`
	CreationDate int64   `json:"creation_date"`
	Username     string  `json:"username"`
	Password     string  `json:"-"`
	Email        string  `json:"email"`
	Description  *string `json:"description"`
	Picture      *string `json:"picture"`
}

// NewUser constructs a user item with a fresh uuid and creation timestamp.
func NewUser(username, hashedPassword, email string, description, picture *string) Item {
	return Item{
		"uuid":          uuid.NewString(),
		"type":          TypeUser,
		"creation_date": time.Now().Unix(),
		"username":      username,
		"password":      hashedPassword,
		"email":         email,
		"description":   optional(description),
		"picture":       optional(picture),
	}
}

// AsUser narrows an item to a User. It reports false unless the item's type
// tag is "user".
func AsUser(it Item) (*User, bool) {
	if it.Type() != TypeUser {
		return nil, false
	}
	return &User{
		UUID:         it.UUID(),
		CreationDate: it.Int("creation_date"),
		Username:     it.Str("username"),
		Password:     it.Str("password"),
		Email:        it.Str("email"),
		Description:  optionalStr(it, "description"),
		Picture:      optionalStr(it, "picture"),
	}, true
}

// Recipe is the narrowed shape of a "recipe" item. AuthorUUID is immutable
// after creation; Category and Cuisine are stored lowercased.
type Recipe struct {
	UUID         string   `json:"uuid"`
	CreationDate int64    `json:"creation_date"`
	AuthorUUID   string   `json:"authorUuid"`
	RecipeThumb  string   `json:"recipeThumb"`
	RecipeName   string   `json:"recipeName"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// NewRecipe constructs a recipe item owned by authorUUID.
func NewRecipe(authorUUID, recipeThumb, recipeName, category, cuisine, description, instructions string, ingredients []string) Item {
	return Item{
		"uuid":          uuid.NewString(),
		"type":          TypeRecipe,
		"creation_date": time.Now().Unix(),
		"authorUuid":    authorUUID,
		"recipeThumb":   recipeThumb,
		"recipeName":    recipeName,
		"category":      category,
		"cuisine":       cuisine,
		"description":   description,
		"ingredients":   ingredients,
		"instructions":  instructions,
	}
}

// AsRecipe narrows an item to a Recipe.
func AsRecipe(it Item) (*Recipe, bool) {
	if it.Type() != TypeRecipe {
		return nil, false
	}
	return &Recipe{
		UUID:         it.UUID(),
		CreationDate: it.Int("creation_date"),
		AuthorUUID:   it.Str("authorUuid"),
		RecipeThumb:  it.Str("recipeThumb"),
		RecipeName:   it.Str("recipeName"),
		Category:     it.Str("category"),
		Cuisine:      it.Str("cuisine"),
		Description:  it.Str("description"),
		Ingredients:  it.Strings("ingredients"),
		Instructions: it.Str("instructions"),
	}, true
}

// Comment is the narrowed shape of a "comment" item. AuthorUUID and
// RecipeUUID are immutable; Rating is an integer in [1,10].
type Comment struct {
	UUID         string `json:"uuid"`
	CreationDate int64  `json:"creation_date"`
	AuthorUUID   string `json:"authorUuid"`
	RecipeUUID   string `json:"recipeUuid"`
	Description  string `json:"description"`
	Rating       int64  `json:"rating"`
}

// NewComment constructs a comment item linking authorUUID to recipeUUID.
func NewComment(authorUUID, recipeUUID, description string, rating int64) Item {
	return Item{
		"uuid":          uuid.NewString(),
		"type":          TypeComment,
		"creation_date": time.Now().Unix(),
		"authorUuid":    authorUUID,
		"recipeUuid":    recipeUUID,
		"description":   description,
		"rating":        rating,
	}
}

// AsComment narrows an item to a Comment.
func AsComment(it Item) (*Comment, bool) {
	if it.Type() != TypeComment {
		return nil, false
	}
	return &Comment{
		UUID:         it.UUID(),
		CreationDate: it.Int("creation_date"),
		AuthorUUID:   it.Str("authorUuid"),
		RecipeUUID:   it.Str("recipeUuid"),
		Description:  it.Str("description"),
		Rating:       it.Int("rating"),
	}, true
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optionalStr(it Item, key string) *string {
	if s, ok := it[key].(string); ok {
		return &s
	}
	return nil
}
