package memory

import (
	"sync"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
)

// Store almacén en memoria con la misma semántica que PostgreSQL.
// mu protege los datos; txMu serializa las transacciones (equivale al bloqueo de fila).
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	ingredients map[string]entity.Ingredient
	recipes     []entity.Recipe
	movements   []entity.StockMovement
	alerts      []entity.StockAlert
	syncLogs    []entity.SyncLog
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{ingredients: make(map[string]entity.Ingredient)}
}

func ingredientKey(userID, ingredientID string) string { return userID + "|" + ingredientID }

// PutIngredient inserta o reemplaza un ingrediente.
func (s *Store) PutIngredient(ing *entity.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[ingredientKey(ing.UserID, ing.ID)] = cloneIngredient(*ing)
}

// PutRecipe inserta o reemplaza una receta por ID.
func (s *Store) PutRecipe(r *entity.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneRecipe(*r)
	for i := range s.recipes {
		if s.recipes[i].ID == r.ID && s.recipes[i].UserID == r.UserID {
			s.recipes[i] = c
			return
		}
	}
	s.recipes = append(s.recipes, c)
}

func cloneIngredient(i entity.Ingredient) entity.Ingredient {
	if i.MinimumStock != nil {
		m := *i.MinimumStock
		i.MinimumStock = &m
	}
	return i
}

func cloneRecipe(r entity.Recipe) entity.Recipe {
	r.Ingredients = append([]entity.RecipeIngredient(nil), r.Ingredients...)
	return r
}

func cloneSyncLog(l entity.SyncLog) entity.SyncLog {
	l.Errors = append([]entity.ProcessingError(nil), l.Errors...)
	return l
}
