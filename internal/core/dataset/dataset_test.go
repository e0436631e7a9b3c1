package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	records, err := Load(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	veg := records[0]
	assert.Equal(t, "Veg Pulao", veg.Name)
	assert.Equal(t, "Indian", veg.Cuisine)
	assert.Equal(t, "30 M", veg.PrepTime)
	assert.Equal(t, []string{"rice", "peas", "cumin"}, veg.Ingredients)
	assert.True(t, veg.HasIngredient("peas"))
	assert.Equal(t, 3, veg.IngredientCount())
	assert.True(t, veg.Complete())

	plain := records[2]
	assert.False(t, plain.Has(FieldImageURL))
	assert.False(t, plain.Has(FieldInstructions))
	assert.False(t, plain.Complete())
}

func TestLoadIsDeterministic(t *testing.T) {
	a, err := Load(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, err)
	b, err := Load(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.csv")},
		{"empty file", write("empty.csv", "")},
		{"missing column", write("cols.csv", "name,cuisine,course,diet,prep_time\nA,B,C,D,E\n")},
		{"ragged row", write("ragged.csv", "name,cuisine,course,diet,prep_time,ingredients\nA,B,C,D,E,F\nA,B\n")},
		{"bad quote", write("quote.csv", "name,cuisine,course,diet,prep_time,ingredients\n\"A,B,C,D,E,F\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Load(tt.path)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, errors.Is(err, common.ErrLoadFailure))
		})
	}
}

func TestParseHeaderIsCaseInsensitive(t *testing.T) {
	src := "\ufeffName , CUISINE,Course,Diet,Prep_Time,Ingredients\nDal,Indian,Main,Vegetarian,20 M,\"Toor Dal,  Turmeric \"\n"
	records, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dal", records[0].Name)
	assert.Equal(t, []string{"toor dal", "turmeric"}, records[0].Ingredients)
	// image_url is not a column here, so it does not count as missing
	assert.True(t, records[0].Complete())
}

func TestTokenizeIngredients(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Rice, Peas ,cumin", []string{"rice", "peas", "cumin"}},
		{"salt\tpepper\nOil", []string{"salt", "pepper", "oil"}},
		{"• Green  Chilli • Ginger;garlic", []string{"green chilli", "ginger", "garlic"}},
		{"rice, Rice, RICE", []string{"rice"}},
		{"", []string{}},
		{" , ,\n", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenizeIngredients(tt.raw), tt.raw)
	}
}

func TestCleanIngredientList(t *testing.T) {
	got := CleanIngredientList("Rice 2 cups  basmati\n1 teaspoon cumin • salt - to taste")
	assert.Equal(t, []string{"Rice", "2 cups basmati", "1 teaspoon cumin", "• salt", "- to taste"}, got)

	assert.Equal(t, []string{"1-2 green chillies"}, CleanIngredientList("1-2 green chillies"))
	assert.Empty(t, CleanIngredientList("   "))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Wash rice. Cook well.", CleanText("Wash rice.\r\n\tCook   well.  "))
	assert.Equal(t, "", CleanText(""))
}

func TestNewRecordMarksEmptyFieldsMissing(t *testing.T) {
	r := NewRecord(Record{Name: "Toast", PrepTime: "5 M", Cuisine: "Continental", Course: "Breakfast", Diet: "Vegetarian", IngredientsRaw: "bread, butter"})
	assert.False(t, r.Has(FieldImageURL))
	assert.False(t, r.Complete())
	assert.Equal(t, []string{"bread", "butter"}, r.Ingredients)
	assert.Equal(t, "toast", r.LowerName())
}

func TestSnapshot(t *testing.T) {
	records, err := Load(filepath.Join("testdata", "recipes.csv"))
	require.NoError(t, err)

	snap := NewSnapshot(records, nil)
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, []string{"Indian"}, snap.Cuisines())
	assert.Equal(t, []string{"Main Course", "Side Dish"}, snap.Courses())
	assert.Equal(t, []string{"Non Vegeterian", "Vegetarian"}, snap.Diets())
	assert.Equal(t, []string{}, snap.Ingredients())
}

func TestLoadVocabulary(t *testing.T) {
	names, err := LoadVocabulary(filepath.Join("testdata", "ingredients.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice", "Peas", "Cumin"}, names)

	_, err = LoadVocabulary(filepath.Join("testdata", "missing.csv"))
	assert.True(t, errors.Is(err, common.ErrLoadFailure))
}

func TestWhitespaceCellIsNotMissing(t *testing.T) {
	src := "name,cuisine,course,diet,prep_time,ingredients,image_url\nDal,Indian,Main,Vegetarian,20 M,dal,\" \"\nRoti,Indian,Main,Vegetarian,10 M,atta,\n"
	records, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// only an empty cell counts as missing
	assert.True(t, records[0].Has(FieldImageURL))
	assert.True(t, records[0].Complete())
	assert.False(t, records[1].Has(FieldImageURL))

	assert.True(t, NewRecord(Record{Name: "Toast", ImageURL: " "}).Has(FieldImageURL))
}
