package usecase

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/domain/repository"
)

// PeopleUseCase mantiene las listas de solicitantes y usuarios de bodega.
// Las listas se leen una vez y se reescriben completas en cada cambio.
type PeopleUseCase struct {
	mu    sync.Mutex
	repo  repository.PeopleRepository
	lists map[entity.PersonRole][]string
}

// NewPeopleUseCase construye el caso de uso.
func NewPeopleUseCase(repo repository.PeopleRepository) *PeopleUseCase {
	return &PeopleUseCase{repo: repo, lists: make(map[entity.PersonRole][]string)}
}

// List devuelve una copia de la lista del rol.
func (uc *PeopleUseCase) List(role entity.PersonRole) ([]string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	names, err := uc.load(role)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Add agrega name (recortado). Devuelve false si ya existía.
func (uc *PeopleUseCase) Add(role entity.PersonRole, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	names, err := uc.load(role)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return false, nil
		}
	}
	updated := append(append([]string{}, names...), name)
	if err := uc.repo.Save(role, updated); err != nil {
		return false, fmt.Errorf("error al guardar %s: %w", role, err)
	}
	uc.lists[role] = updated
	return true, nil
}

// Remove quita name. Devuelve false si no estaba.
func (uc *PeopleUseCase) Remove(role entity.PersonRole, name string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	names, err := uc.load(role)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, n := range names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	updated := make([]string, 0, len(names)-1)
	updated = append(updated, names[:idx]...)
	updated = append(updated, names[idx+1:]...)
	if err := uc.repo.Save(role, updated); err != nil {
		return false, fmt.Errorf("error al guardar %s: %w", role, err)
	}
	uc.lists[role] = updated
	return true, nil
}

func (uc *PeopleUseCase) load(role entity.PersonRole) ([]string, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("rol %q: %w", role, domain.ErrInvalidInput)
	}
	if names, ok := uc.lists[role]; ok {
		return names, nil
	}
	names, err := uc.repo.Load(role)
	if err != nil {
		return nil, err
	}
	uc.lists[role] = names
	return names, nil
}
