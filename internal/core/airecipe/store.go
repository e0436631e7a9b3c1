package airecipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedRecipe an AI generated recipe kept by a user
type SavedRecipe struct {
	ID         uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	RecipeName string    `gorm:"not null" json:"name"`
	Recipe     string    `gorm:"type:text;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns an id
func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Summary list entry
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store saved recipes in the database
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db. The SavedRecipe table must be migrated.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save stores recipe for userID; the recipe must carry a non-empty "name"
func (s *Store) Save(ctx context.Context, userID string, recipe map[string]interface{}) (*SavedRecipe, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	name, _ := recipe["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewInvalidInput("recipe name is required")
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		return nil, common.NewInvalidInput(fmt.Sprintf("recipe is not serialisable: %v", err))
	}

	saved := &SavedRecipe{
		UserID:     userID,
		RecipeName: name,
		Recipe:     string(data),
	}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return saved, nil
}

// List summaries of userID's recipes, newest first
func (s *Store) List(ctx context.Context, userID string) ([]Summary, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}

	var rows []SavedRecipe
	err := s.db.WithContext(ctx).
		Select("id", "recipe_name", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary{ID: r.ID.String(), Name: r.RecipeName})
	}
	return out, nil
}

// Get one of userID's recipes as stored
func (s *Store) Get(ctx context.Context, userID, id string) (map[string]interface{}, error) {
	row, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var recipe map[string]interface{}
	if err := common.ParseJSON(row.Recipe, &recipe); err != nil {
		return nil, fmt.Errorf("stored recipe %s is corrupt: %w", id, err)
	}
	return recipe, nil
}

// Delete removes one of userID's recipes
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	row, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&SavedRecipe{}, "id = ?", row.ID).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

func (s *Store) find(ctx context.Context, userID, id string) (*SavedRecipe, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, common.NewNotFound("Recipe not found")
	}

	var row SavedRecipe
	err = s.db.WithContext(ctx).Where("id = ? AND user_id = ?", rid, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFound("Recipe not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &row, nil
}
