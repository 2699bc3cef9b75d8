// Package settings persiste preferencias del operador en un archivo JSON.
package settings

import (
	"os"
	"sync"

	"github.com/spf13/viper"

	"github.com/jhoicas/vale-consumo/pkg/logger"
)

const keyLastInventoryDir = "last_inventory_dir"

// Store lee y escribe el archivo de preferencias. Las fallas de lectura o
// escritura se registran y se ignoran.
type Store struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewStore construye el store sobre path (por ejemplo app_settings.json).
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{path: path, log: log}
}

// LastInventoryDir devuelve la última carpeta de inventario usada si todavía existe.
func (s *Store) LastInventoryDir() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := s.read().GetString(keyLastInventoryDir)
	if dir == "" {
		return "", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// SetLastInventoryDir guarda dir conservando el resto de las preferencias.
func (s *Store) SetLastInventoryDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.read()
	v.Set(keyLastInventoryDir, dir)
	if err := v.WriteConfigAs(s.path); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("no se pudieron guardar las preferencias")
	}
}

func (s *Store) read() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if _, err := os.Stat(s.path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			s.log.Warn().Err(err).Str("path", s.path).Msg("preferencias ilegibles, se ignoran")
		}
	}
	return v
}
