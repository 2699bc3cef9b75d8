package vale

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/domain/repository"
)

// Modos de unificación.
const (
	MergeModeTable  = "tabla"
	MergeModeConcat = "concatenado"
)

// maxOriginTokens orígenes que se incluyen en el nombre del vale unificado.
const maxOriginTokens = 5

func parseStatus(s string) (entity.ValeStatus, error) {
	st := entity.ValeStatus(strings.TrimSpace(s))
	if st == "" {
		return "", nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, s)
	}
	return st, nil
}

// ListRegistry lista el índice (filtrado por estado si se indica). Si el índice
// está vacío y el historial tiene documentos, reindexa antes de listar.
func (s *ValeService) ListRegistry(status string) (*dto.RegistryListResponse, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reindexed := 0
	if s.registry.Len() == 0 {
		res, pr := s.registry.Reindex()
		s.warnPersistence("reindexar", pr)
		if res.Added > 0 {
			s.log.Info().Int("added", res.Added).Msg("historial reindexado automáticamente")
		}
		reindexed = res.Added
	}
	out := toRegistryListResponse(s.registry.List(st))
	out.Reindexed = reindexed
	return out, nil
}

// FindEntry busca una entrada por número.
func (s *ValeService) FindEntry(number int) (*dto.RegistryEntryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.registry.FindByNumber(number)
	if err != nil {
		return nil, err
	}
	resp := toRegistryEntryResponse(e)
	return &resp, nil
}

// SetStatus cambia el estado de varias entradas.
func (s *ValeService) SetStatus(in dto.SetStatusRequest) (*dto.MutationResponse, error) {
	st, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if st == "" {
		return nil, fmt.Errorf("%w: estado requerido", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count, pr := s.registry.SetStatus(in.Numbers, st)
	s.warnPersistence("cambiar estado", pr)
	s.log.Info().Ints("numbers", in.Numbers).Str("status", string(st)).Int("updated", count).Msg("estado actualizado")
	return &dto.MutationResponse{Updated: count, PersistenceError: persistenceMessage(pr)}, nil
}

// UpdateEntry modifica campos de una entrada. Número inexistente = ErrNotFound.
func (s *ValeService) UpdateEntry(number int, in dto.UpdateEntryRequest) (*dto.MutationResponse, error) {
	upd := repository.EntryUpdate{
		CreatedAt: in.CreatedAt,
		Document:  in.Document,
		Sidecar:   in.Sidecar,
		ItemCount: in.ItemCount,
	}
	if in.Status != nil {
		st, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if st != "" {
			upd.Status = &st
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.registry.FindByNumber(number); err != nil {
		return nil, err
	}
	changed, pr := s.registry.UpdateEntry(number, upd)
	s.warnPersistence("actualizar entrada", pr)
	resp := &dto.MutationResponse{PersistenceError: persistenceMessage(pr)}
	if changed {
		resp.Updated = 1
	}
	return resp, nil
}

// RegisterVoucher registra un documento ya existente con un número nuevo.
func (s *ValeService) RegisterVoucher(in dto.RegisterVoucherRequest) (*dto.RegistryEntryResponse, error) {
	doc := strings.TrimSpace(in.Document)
	if doc == "" {
		return nil, fmt.Errorf("%w: documento requerido", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, pr := s.registry.RegisterVoucher(doc, strings.TrimSpace(in.Sidecar), in.ItemCount)
	s.warnPersistence("registrar vale", pr)
	resp := toRegistryEntryResponse(e)
	return &resp, nil
}

// Reindex agrega al índice los documentos del historial no registrados.
func (s *ValeService) Reindex() *dto.ReindexResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, pr := s.registry.Reindex()
	s.warnPersistence("reindexar", pr)
	if res.Added > 0 {
		s.log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Msg("historial reindexado")
	}
	return &dto.ReindexResponse{Added: res.Added, Skipped: res.Skipped, PersistenceError: persistenceMessage(pr)}
}

// CleanDatabase borra todos los PDF y JSON del historial (excepto el índice) y
// reinicia la numeración. Los archivos que no se pudieron borrar se informan.
func (s *ValeService) CleanDatabase() *dto.CleanResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &dto.CleanResponse{}
	indexName := filepath.Base(s.registry.Path())
	entries, err := os.ReadDir(s.historyDir())
	if err == nil {
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == indexName {
				continue
			}
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".pdf" && ext != ".json" {
				continue
			}
			if err := os.Remove(s.historyPath(name)); err != nil {
				resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", name, err))
				continue
			}
			resp.Deleted++
		}
	}

	pr := s.registry.ResetAll()
	s.warnPersistence("limpiar índice", pr)
	resp.PersistenceError = persistenceMessage(pr)
	s.log.Warn().Int("deleted", resp.Deleted).Int("errors", len(resp.Errors)).Msg("base de datos de solicitudes limpiada")
	return resp
}

// Export genera un listado del índice en PDF o xlsx dentro del historial.
func (s *ValeService) Export(in dto.ExportRequest) (*dto.ExportResponse, error) {
	st, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(strings.TrimSpace(in.Format))

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.registry.List(st)
	label := string(st)
	if label == "" {
		label = "Todas"
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no hay solicitudes con estado %s: %w", label, domain.ErrNotFound)
	}
	if err := s.ensureHistoryDir(); err != nil {
		return nil, err
	}
	ts := s.now().Format(FileTimestampLayout)
	slug := strings.ToLower(label)

	var name string
	switch format {
	case "pdf":
		name = fmt.Sprintf("listado_solicitudes_%s_%s.pdf", slug, ts)
		doc, err := s.renderer.RenderList("Listado de solicitudes - "+label, entries, s.now())
		if err != nil {
			return nil, fmt.Errorf("generar listado: %w", err)
		}
		if err := os.WriteFile(s.historyPath(name), doc, 0o644); err != nil {
			return nil, fmt.Errorf("guardar listado: %w", err)
		}
	case "xlsx":
		if s.exporter == nil {
			return nil, fmt.Errorf("%w: exportación a planilla no disponible", domain.ErrInvalidInput)
		}
		name = fmt.Sprintf("solicitudes_%s_%s.xlsx", slug, ts)
		if err := s.exporter.ExportRegistry(s.historyPath(name), entries); err != nil {
			return nil, fmt.Errorf("exportar listado: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, in.Format)
	}

	s.log.Info().Str("file", name).Int("count", len(entries)).Msg("listado exportado")
	return &dto.ExportResponse{File: name, Count: len(entries)}, nil
}

// Merge unifica dos o más vales. Con los JSON asociados consolida las líneas
// por producto, lote, ubicación y vencimiento; si ninguno es legible, o falla
// la generación de la tabla, concatena los PDF.
func (s *ValeService) Merge(in dto.MergeRequest) (*dto.MergeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inputs []string
	for _, n := range in.Numbers {
		e, err := s.registry.FindByNumber(n)
		if err != nil {
			continue
		}
		p := s.historyPath(e.Document)
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			continue
		}
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			continue
		}
		inputs = append(inputs, p)
	}
	if len(inputs) < 2 {
		return nil, fmt.Errorf("%w: no hay suficientes PDFs válidos para unificar", domain.ErrInvalidInput)
	}

	lines, missing := consolidateSidecars(inputs)
	now := s.now()
	ts := now.Format(FileTimestampLayout)
	name := unifiedFileName(lines, ts)
	out := s.historyPath(name)

	if len(lines) > 0 {
		doc, err := s.renderer.RenderUnified(s.opts.Title+" (UNIFICADO)", lines, now)
		if err == nil {
			err = os.WriteFile(out, doc, 0o644)
		}
		if err == nil {
			s.log.Info().Str("file", name).Int("lines", len(lines)).Msg("vale unificado generado (tabla)")
			return &dto.MergeResponse{File: name, Mode: MergeModeTable, Lines: len(lines), MissingSidecars: missing}, nil
		}
		s.log.Warn().Err(err).Msg("fallo al crear vale unificado estructurado, se concatenan PDFs")
	}

	if s.merger == nil {
		return nil, fmt.Errorf("%w: unificación por concatenación no disponible", domain.ErrInvalidInput)
	}
	if err := s.merger.MergeFiles(inputs, out); err != nil {
		return nil, fmt.Errorf("unificar vales: %w", err)
	}
	s.log.Info().Str("file", name).Int("documents", len(inputs)).Msg("vale unificado generado (concatenado)")
	return &dto.MergeResponse{File: name, Mode: MergeModeConcat, MissingSidecars: missing}, nil
}

// consolidateSidecars lee el JSON junto a cada PDF y acumula cantidades por
// línea en orden de aparición. Devuelve también los PDF sin JSON legible.
func consolidateSidecars(pdfPaths []string) ([]entity.UnifiedLine, []string) {
	type key struct{ product, lot, location, expiry string }
	type acc struct {
		qty     int
		origins map[string]struct{}
	}
	order := []key{}
	byKey := map[key]*acc{}
	var missing []string

	for _, p := range pdfPaths {
		pdfName := filepath.Base(p)
		raw, err := os.ReadFile(strings.TrimSuffix(p, filepath.Ext(p)) + ".json")
		if err != nil {
			missing = append(missing, pdfName)
			continue
		}
		var sc entity.Sidecar
		if err := json.Unmarshal(raw, &sc); err != nil {
			missing = append(missing, pdfName)
			continue
		}
		origin := originOf(pdfName)
		for _, it := range sc.Items {
			k := key{it.ProductName, it.Lot, it.Location, it.Expiry}
			a, ok := byKey[k]
			if !ok {
				a = &acc{origins: map[string]struct{}{}}
				byKey[k] = a
				order = append(order, k)
			}
			a.qty += it.Quantity
			a.origins[origin] = struct{}{}
		}
	}

	lines := make([]entity.UnifiedLine, 0, len(order))
	for _, k := range order {
		a := byKey[k]
		origins := make([]string, 0, len(a.origins))
		for o := range a.origins {
			origins = append(origins, o)
		}
		sort.Slice(origins, func(i, j int) bool {
			if len(origins[i]) != len(origins[j]) {
				return len(origins[i]) < len(origins[j])
			}
			return origins[i] < origins[j]
		})
		lines = append(lines, entity.UnifiedLine{
			Origins:     origins,
			ProductName: k.product,
			Lot:         k.lot,
			Location:    k.location,
			Expiry:      k.expiry,
			Quantity:    a.qty,
		})
	}
	return lines, missing
}

// originOf número de solicitud sin ceros a la izquierda a partir del nombre
// "solicitud_007_..." o el nombre completo si no sigue ese patrón.
func originOf(pdfName string) string {
	parts := strings.Split(pdfName, "_")
	if len(parts) >= 2 {
		if isDigits(parts[1]) {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				return strconv.Itoa(n)
			}
		}
	}
	return pdfName
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unifiedFileName solicitud_unificada_(1+3+7)_<ts>.pdf con hasta cinco orígenes.
func unifiedFileName(lines []entity.UnifiedLine, ts string) string {
	var tokens []string
	seen := map[string]struct{}{}
collect:
	for _, l := range lines {
		for _, o := range l.Origins {
			if _, ok := seen[o]; ok || o == "" {
				continue
			}
			seen[o] = struct{}{}
			tokens = append(tokens, o)
			if len(tokens) >= maxOriginTokens {
				break collect
			}
		}
	}
	if len(tokens) == 0 {
		return fmt.Sprintf("solicitud_unificada_%s.pdf", ts)
	}
	return fmt.Sprintf("solicitud_unificada_(%s)_%s.pdf", strings.Join(tokens, "+"), ts)
}
