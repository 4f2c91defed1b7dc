package sales

import (
	"context"
	"testing"

	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDecompose_BySKUScalesByQuantityAndServings(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{
		ID: "r1", UserID: "u1", Name: "Lasagna", SKU: "LAS-01", Servings: dec("4"), IsActive: true,
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "pasta", IngredientName: "Pasta", Quantity: dec("400"), Unit: "g"},
			{IngredientName: "Sal al gusto", Quantity: dec("1"), Unit: "pizca"},
		},
	})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	got, err := d.Decompose(context.Background(), "u1", entity.SaleLine{LineID: "1", ItemRef: "LAS-01", Quantity: dec("2")})
	require.NoError(t, err)
	assert.Equal(t, MatchedBySKU, got.MatchedBy)
	assert.Equal(t, "r1", got.RecipeID)
	require.Len(t, got.Ingredients, 1, "los ingredientes sin ID no se descuentan")
	assert.True(t, got.Ingredients[0].QuantityNeeded.Equal(dec("200")), got.Ingredients[0].QuantityNeeded.String())
}

func TestDecompose_ZeroServingsCountsAsOne(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{
		ID: "r1", UserID: "u1", Name: "Burger", SKU: "B1", IsActive: true,
		Ingredients: []entity.RecipeIngredient{{IngredientID: "beef", Quantity: dec("150"), Unit: "g"}},
	})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	got, err := d.Decompose(context.Background(), "u1", entity.SaleLine{ItemRef: "B1", Quantity: dec("3")})
	require.NoError(t, err)
	assert.True(t, got.Ingredients[0].QuantityNeeded.Equal(dec("450")))
}

func TestDecompose_FractionalServingsMultipliesBeforeDividing(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{
		ID: "r1", UserID: "u1", Name: "Chili", SKU: "CHILI", Servings: dec("3"), IsActive: true,
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "beef", Quantity: dec("150"), Unit: "g"},
			{IngredientID: "beans", Quantity: dec("100"), Unit: "g"},
		},
	})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	got, err := d.Decompose(context.Background(), "u1", entity.SaleLine{ItemRef: "CHILI", Quantity: dec("1")})
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "50", got.Ingredients[0].QuantityNeeded.String())
	assert.Equal(t, "33.3333", got.Ingredients[1].QuantityNeeded.String(), "escala de almacenamiento")

	got, err = d.Decompose(context.Background(), "u1", entity.SaleLine{ItemRef: "CHILI", Quantity: dec("3")})
	require.NoError(t, err)
	assert.True(t, got.Ingredients[0].QuantityNeeded.Equal(dec("150")))
	assert.True(t, got.Ingredients[1].QuantityNeeded.Equal(dec("100")))
}

func TestDecompose_FallsBackToNormalizedName(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{
		ID: "r1", UserID: "u1", Name: "Crème Brûlée", IsActive: true,
		Ingredients: []entity.RecipeIngredient{{IngredientID: "cream", Quantity: dec("100"), Unit: "ml"}},
	})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	got, err := d.Decompose(context.Background(), "u1", entity.SaleLine{ItemRef: "UNKNOWN", Description: " creme  BRULEE", Quantity: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, MatchedByName, got.MatchedBy)
	assert.Equal(t, "r1", got.RecipeID)
}

func TestDecompose_IgnoresInactiveAndOtherUsers(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{ID: "r1", UserID: "u1", Name: "Burger", SKU: "B1", IsActive: false})
	s.PutRecipe(&entity.Recipe{ID: "r2", UserID: "u2", Name: "Burger", SKU: "B1", IsActive: true})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	_, err := d.Decompose(context.Background(), "u1", entity.SaleLine{ItemRef: "B1", Description: "Burger", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDecompose_AmbiguousName(t *testing.T) {
	s := memory.NewStore()
	s.PutRecipe(&entity.Recipe{ID: "r1", UserID: "u1", Name: "Café", IsActive: true})
	s.PutRecipe(&entity.Recipe{ID: "r2", UserID: "u1", Name: "cafe", IsActive: true})
	d := NewRecipeDecomposer(memory.NewRecipeRepo(s))

	_, err := d.Decompose(context.Background(), "u1", entity.SaleLine{Description: "CAFE", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrRecipeAmbiguous)
}
