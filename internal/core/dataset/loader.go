package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

var requiredColumns = []string{"name", "cuisine", "course", "diet", "prep_time", "ingredients"}

var columnFields = map[string]Field{
	"name":         FieldName,
	"cuisine":      FieldCuisine,
	"course":       FieldCourse,
	"diet":         FieldDiet,
	"prep_time":    FieldPrepTime,
	"ingredients":  FieldIngredients,
	"image_url":    FieldImageURL,
	"description":  FieldDescription,
	"instructions": FieldInstructions,
}

// Load reads the recipe table at path. Any failure yields a LoadFailure and no records.
func Load(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewLoadFailure(fmt.Sprintf("cannot open dataset %q", path), err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, common.NewLoadFailure(fmt.Sprintf("cannot parse dataset %q", path), err)
	}

	common.LogInfo("Dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// Parse reads a header row followed by recipe rows
func Parse(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[Field]int, len(columnFields))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if f, ok := columnFields[col]; ok {
			if _, dup := index[f]; !dup {
				index[f] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[columnFields[col]]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var records []*Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, fromRow(row, index))
	}

	return records, nil
}

func fromRow(row []string, index map[Field]int) *Record {
	rec := &Record{}
	for f, i := range index {
		v := row[i]
		if v == "" {
			rec.Missing |= f
		}
		switch f {
		case FieldName:
			rec.Name = v
		case FieldCuisine:
			rec.Cuisine = v
		case FieldCourse:
			rec.Course = v
		case FieldDiet:
			rec.Diet = v
		case FieldPrepTime:
			rec.PrepTime = v
		case FieldIngredients:
			rec.IngredientsRaw = v
		case FieldImageURL:
			rec.ImageURL = v
		case FieldDescription:
			rec.Description = v
		case FieldInstructions:
			rec.Instructions = v
		}
	}
	rec.derive()
	return rec
}

// LoadVocabulary reads the ';'-separated ingredient list and returns the second
// column of every row that has one.
func LoadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewLoadFailure(fmt.Sprintf("cannot open ingredient list %q", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var names []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.NewLoadFailure(fmt.Sprintf("cannot parse ingredient list %q", path), err)
		}
		if len(row) > 1 {
			if name := strings.TrimSpace(row[1]); name != "" {
				names = append(names, name)
			}
		}
	}

	common.LogInfo("Ingredient vocabulary loaded",
		zap.String("path", path),
		zap.Int("ingredients", len(names)),
	)
	return names, nil
}
