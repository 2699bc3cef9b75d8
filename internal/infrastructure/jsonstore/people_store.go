// Package jsonstore guarda las listas de solicitantes y usuarios de bodega como arreglos JSON.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// PeopleStore implementa repository.PeopleRepository con un archivo por rol:
// <dir>/solicitantes.json y <dir>/usuarios_bodega.json.
type PeopleStore struct {
	dir string
}

// NewPeopleStore construye el store sobre dir.
func NewPeopleStore(dir string) *PeopleStore {
	return &PeopleStore{dir: dir}
}

// Path ruta del archivo del rol.
func (s *PeopleStore) Path(role entity.PersonRole) string {
	return filepath.Join(s.dir, string(role)+".json")
}

// Load devuelve la lista guardada; archivo inexistente o ilegible = lista vacía.
func (s *PeopleStore) Load(role entity.PersonRole) ([]string, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("jsonstore: rol %q: %w", role, domain.ErrInvalidInput)
	}
	raw, err := os.ReadFile(s.Path(role))
	if err != nil {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil || names == nil {
		return []string{}, nil
	}
	return names, nil
}

// Save reescribe la lista completa.
func (s *PeopleStore) Save(role entity.PersonRole, names []string) error {
	if !role.Valid() {
		return fmt.Errorf("jsonstore: rol %q: %w", role, domain.ErrInvalidInput)
	}
	if names == nil {
		names = []string{}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("jsonstore: crear %s: %w", s.dir, err)
	}
	raw, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: serializar %s: %w", role, err)
	}
	if err := os.WriteFile(s.Path(role), raw, 0o644); err != nil {
		return fmt.Errorf("jsonstore: guardar %s: %w", role, err)
	}
	return nil
}
