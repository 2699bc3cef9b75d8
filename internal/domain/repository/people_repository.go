package repository

import "github.com/jhoicas/vale-consumo/internal/domain/entity"

// PeopleRepository define el puerto de persistencia de las listas de personas (DIP).
type PeopleRepository interface {
	Load(role entity.PersonRole) ([]string, error)
	Save(role entity.PersonRole, names []string) error
}
