// Package registry implementa el índice de vales emitidos sobre un único archivo
// JSON dentro de la carpeta de historial.
//
// Estructura del archivo (compatible con índices existentes):
//
//	{
//	  "sequence": 15,
//	  "vales": [
//	    {
//	      "number": 1,
//	      "status": "Pendiente",
//	      "created_at": "2025-11-13T15:04:09",
//	      "pdf": "solicitud_001_20251113_150409.pdf",
//	      "json": "solicitud_001_20251113_150409.json",
//	      "items_count": 3
//	    }
//	  ]
//	}
//
// El archivo se lee completo al construir y se reescribe completo en cada
// mutación. Las fallas de escritura no se propagan como error: cada operación
// devuelve un PersistenceResult y el estado en memoria sigue siendo el vigente.
// No hay bloqueo entre procesos que compartan la misma carpeta.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/domain/repository"
	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// IndexFileName nombre del archivo de índice dentro del historial.
const IndexFileName = "vales_index.json"

// PersistenceResult, ReindexResult y EntryUpdate se definen en el puerto.
type (
	PersistenceResult = repository.PersistenceResult
	ReindexResult     = repository.ReindexResult
	EntryUpdate       = repository.EntryUpdate
)

var _ repository.ValeRegistry = (*ValeRegistry)(nil)

// Option configura el registro.
type Option func(*ValeRegistry)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(r *ValeRegistry) { r.now = now }
}

// WithLogger registra las fallas de persistencia.
func WithLogger(l *logger.Logger) Option {
	return func(r *ValeRegistry) { r.log = l }
}

// ValeRegistry numeración y estados de solicitudes emitidas.
type ValeRegistry struct {
	mu   sync.Mutex
	dir  string
	path string
	data storeFile
	now  func() time.Time
	log  *logger.Logger
}

type storeFile struct {
	Sequence int           `json:"sequence"`
	Entries  []entryRecord `json:"vales"`
}

type entryRecord struct {
	Number    int    `json:"number"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	Document  string `json:"pdf"`
	Sidecar   string `json:"json"`
	ItemCount int    `json:"items_count"`
}

// sidecarFile campos del JSON asociado que interesan a la reindexación.
type sidecarFile struct {
	EmissionTime string            `json:"emission_time"`
	Items        []json.RawMessage `json:"items"`
}

// New abre (o crea) el índice de la carpeta historyDir. Un archivo ilegible o
// corrupto se trata como índice vacío.
func New(historyDir string, opts ...Option) *ValeRegistry {
	r := &ValeRegistry{
		dir:  historyDir,
		path: filepath.Join(historyDir, IndexFileName),
		now:  time.Now,
		log:  logger.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	r.load()
	return r
}

// Dir carpeta de historial.
func (r *ValeRegistry) Dir() string { return r.dir }

// Path ruta del archivo de índice.
func (r *ValeRegistry) Path() string { return r.path }

// Sequence último número reservado.
func (r *ValeRegistry) Sequence() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Sequence
}

// ReserveNumber reserva el siguiente número y persiste la secuencia antes de
// que exista documento alguno. Un número reservado nunca se reutiliza.
func (r *ValeRegistry) ReserveNumber() (int, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.reserveLocked()
	return n, r.saveLocked()
}

// AppendEntry registra un vale con un número ya reservado, en estado Pendiente.
// La secuencia sube a number si quedó por debajo.
func (r *ValeRegistry) AppendEntry(number int, document, sidecar string, itemCount int) (entity.RegistryEntry, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if number > r.data.Sequence {
		r.data.Sequence = number
	}
	rec := r.appendLocked(number, r.now().Format(entity.TimestampLayout), document, sidecar, itemCount)
	return rec.toEntity(), r.saveLocked()
}

// RegisterVoucher reserva número y registra en una sola llamada.
func (r *ValeRegistry) RegisterVoucher(document, sidecar string, itemCount int) (entity.RegistryEntry, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.reserveLocked()
	rec := r.appendLocked(n, r.now().Format(entity.TimestampLayout), document, sidecar, itemCount)
	return rec.toEntity(), r.saveLocked()
}

// List devuelve las entradas (filtradas por estado si status no es vacío)
// ordenadas por fecha de creación descendente.
func (r *ValeRegistry) List(status entity.ValeStatus) []entity.RegistryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.RegistryEntry, 0, len(r.data.Entries))
	for _, rec := range r.data.Entries {
		if status != "" && entity.ValeStatus(rec.Status) != status {
			continue
		}
		out = append(out, rec.toEntity())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// SetStatus cambia el estado de las entradas cuyos números estén en numbers.
// Persiste una sola vez si algo cambió y devuelve cuántas entradas se tocaron.
func (r *ValeRegistry) SetStatus(numbers []int, status entity.ValeStatus) (int, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}
	count := 0
	for i := range r.data.Entries {
		if _, ok := set[r.data.Entries[i].Number]; ok {
			r.data.Entries[i].Status = string(status)
			count++
		}
	}
	if count == 0 {
		return 0, PersistenceResult{}
	}
	return count, r.saveLocked()
}

// UpdateEntry modifica campos de la entrada number. Devuelve false si no
// existe o si ningún valor era distinto. Los nombres de archivo se guardan sin
// directorio, igual que en AppendEntry.
func (r *ValeRegistry) UpdateEntry(number int, upd EntryUpdate) (bool, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.data.Entries {
		rec := &r.data.Entries[i]
		if rec.Number != number {
			continue
		}
		changed := false
		if upd.Status != nil && rec.Status != string(*upd.Status) {
			rec.Status = string(*upd.Status)
			changed = true
		}
		if upd.CreatedAt != nil && rec.CreatedAt != *upd.CreatedAt {
			rec.CreatedAt = *upd.CreatedAt
			changed = true
		}
		if upd.Document != nil {
			if doc := baseName(*upd.Document); rec.Document != doc {
				rec.Document = doc
				changed = true
			}
		}
		if upd.Sidecar != nil {
			if sc := baseName(*upd.Sidecar); rec.Sidecar != sc {
				rec.Sidecar = sc
				changed = true
			}
		}
		if upd.ItemCount != nil && rec.ItemCount != *upd.ItemCount {
			rec.ItemCount = *upd.ItemCount
			changed = true
		}
		if !changed {
			return false, PersistenceResult{}
		}
		return true, r.saveLocked()
	}
	return false, PersistenceResult{}
}

// FindByNumber busca una entrada por número.
func (r *ValeRegistry) FindByNumber(number int) (entity.RegistryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.data.Entries {
		if rec.Number == number {
			return rec.toEntity(), nil
		}
	}
	return entity.RegistryEntry{}, fmt.Errorf("solicitud %d: %w", number, domain.ErrNotFound)
}

// Len cantidad de entradas registradas.
func (r *ValeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.Entries)
}

// Reindex agrega al índice los PDFs del historial que no estén registrados,
// del más antiguo al más nuevo (fecha de modificación). Si existe el JSON
// asociado se toman de él la cantidad de ítems y la hora de emisión.
func (r *ValeRegistry) Reindex() (ReindexResult, PersistenceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res ReindexResult
	files := r.listDocuments()
	known := make(map[string]struct{}, len(r.data.Entries))
	for _, rec := range r.data.Entries {
		known[filepath.Base(rec.Document)] = struct{}{}
	}

	for _, f := range files {
		if _, ok := known[f.name]; ok {
			res.Skipped++
			continue
		}
		base := strings.TrimSuffix(f.name, filepath.Ext(f.name))
		sidecarName := base + ".json"
		itemCount := 0
		createdAt := ""
		if raw, err := os.ReadFile(filepath.Join(r.dir, sidecarName)); err == nil {
			var sc sidecarFile
			if json.Unmarshal(raw, &sc) == nil {
				itemCount = len(sc.Items)
				createdAt = sc.EmissionTime
			}
		} else {
			sidecarName = ""
		}
		if createdAt == "" {
			createdAt = f.modTime.Format(entity.TimestampLayout)
		}
		n := r.reserveLocked()
		r.appendLocked(n, createdAt, f.name, sidecarName, itemCount)
		known[f.name] = struct{}{}
		res.Added++
	}

	if res.Added == 0 {
		return res, PersistenceResult{}
	}
	return res, r.saveLocked()
}

// ResetAll vacía el índice y reinicia la numeración. No borra documentos.
func (r *ValeRegistry) ResetAll() PersistenceResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = storeFile{Sequence: 0, Entries: []entryRecord{}}
	return r.saveLocked()
}

// ── internals ─────────────────────────────────────────────────────────────────

type docFile struct {
	name    string
	modTime time.Time
}

func (r *ValeRegistry) listDocuments() []docFile {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil
	}
	files := make([]docFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		var mod time.Time
		if info, err := e.Info(); err == nil {
			mod = info.ModTime()
		}
		files = append(files, docFile{name: e.Name(), modTime: mod})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.Before(files[j].modTime)
		}
		return files[i].name < files[j].name
	})
	return files
}

func (r *ValeRegistry) reserveLocked() int {
	r.data.Sequence++
	return r.data.Sequence
}

func (r *ValeRegistry) appendLocked(number int, createdAt, document, sidecar string, itemCount int) entryRecord {
	rec := entryRecord{
		Number:    number,
		Status:    string(entity.ValeStatusPending),
		CreatedAt: createdAt,
		Document:  baseName(document),
		Sidecar:   baseName(sidecar),
		ItemCount: itemCount,
	}
	r.data.Entries = append(r.data.Entries, rec)
	return rec
}

func (r *ValeRegistry) load() {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.log.Warn().Err(err).Str("dir", r.dir).Msg("no se pudo crear la carpeta de historial")
	}
	r.data = storeFile{Entries: []entryRecord{}}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return
	}
	var data storeFile
	if err := json.Unmarshal(raw, &data); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("índice de vales ilegible, se inicia vacío")
		return
	}
	if data.Sequence < 0 {
		data.Sequence = 0
	}
	if data.Entries == nil {
		data.Entries = []entryRecord{}
	}
	r.data = data
}

func (r *ValeRegistry) saveLocked() PersistenceResult {
	raw, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return PersistenceResult{Err: fmt.Errorf("registry: serializar índice: %w", err)}
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("no se pudo guardar el índice de vales")
		return PersistenceResult{Err: fmt.Errorf("registry: escribir índice: %w", err)}
	}
	return PersistenceResult{}
}

func (rec entryRecord) toEntity() entity.RegistryEntry {
	return entity.RegistryEntry{
		Number:    rec.Number,
		Status:    entity.ValeStatus(rec.Status),
		CreatedAt: rec.CreatedAt,
		Document:  rec.Document,
		Sidecar:   rec.Sidecar,
		ItemCount: rec.ItemCount,
	}
}

// baseName reduce p al nombre de archivo; "", "." y ".." quedan vacíos.
func baseName(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	b := filepath.Base(p)
	if b == "." || b == ".." || b == string(filepath.Separator) {
		return ""
	}
	return b
}
