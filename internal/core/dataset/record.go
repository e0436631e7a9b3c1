package dataset

import "strings"

// Field identifies one column of a recipe row
type Field uint16

const (
	FieldName Field = 1 << iota
	FieldCuisine
	FieldCourse
	FieldDiet
	FieldPrepTime
	FieldIngredients
	FieldImageURL
	FieldDescription
	FieldInstructions
)

// ProjectionFields must all be present for a record to appear in a list response
const ProjectionFields = FieldName | FieldPrepTime | FieldImageURL | FieldCuisine | FieldCourse | FieldDiet

// Record one recipe row. Records are shared by every request and must not be modified
// after the snapshot is built.
type Record struct {
	Name           string
	Cuisine        string
	Course         string
	Diet           string
	PrepTime       string
	IngredientsRaw string
	ImageURL       string
	Description    string
	Instructions   string

	// Missing marks columns that exist in the source but were empty for this row.
	Missing Field

	// Ingredients is the normalised token list derived from IngredientsRaw.
	Ingredients []string

	ingredientSet map[string]struct{}
}

// NewRecord derives the ingredient tokens and marks every empty field as missing.
// Used for records that do not come from a file, mostly in tests.
func NewRecord(r Record) *Record {
	values := map[Field]string{
		FieldName:         r.Name,
		FieldCuisine:      r.Cuisine,
		FieldCourse:       r.Course,
		FieldDiet:         r.Diet,
		FieldPrepTime:     r.PrepTime,
		FieldIngredients:  r.IngredientsRaw,
		FieldImageURL:     r.ImageURL,
		FieldDescription:  r.Description,
		FieldInstructions: r.Instructions,
	}
	r.Missing = 0
	for f, v := range values {
		if v == "" {
			r.Missing |= f
		}
	}
	r.derive()
	return &r
}

func (r *Record) derive() {
	r.Ingredients = TokenizeIngredients(r.IngredientsRaw)
	r.ingredientSet = make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		r.ingredientSet[ing] = struct{}{}
	}
}

// Has reports whether the field carried a value
func (r *Record) Has(f Field) bool {
	return r.Missing&f == 0
}

// Complete reports whether every projection field is present
func (r *Record) Complete() bool {
	return r.Missing&ProjectionFields == 0
}

// HasIngredient membership test against the normalised token set
func (r *Record) HasIngredient(token string) bool {
	_, ok := r.ingredientSet[token]
	return ok
}

// IngredientCount size of the normalised token set
func (r *Record) IngredientCount() int {
	return len(r.ingredientSet)
}

// LowerName lowercased name used by every name lookup
func (r *Record) LowerName() string {
	return strings.ToLower(r.Name)
}
