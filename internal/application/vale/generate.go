package vale

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// FileTimestampLayout sufijo de fecha en los nombres de archivo del historial.
const FileTimestampLayout = "20060102_150405"

// Generate emite el vale de la solicitud en curso:
//
//  1. reserva el número en el índice (queda consumido aunque algo falle después)
//  2. genera el PDF y el JSON asociado en el historial
//  3. imprime si se pidió (una falla se informa, no aborta)
//  4. registra la entrada Pendiente y archiva si hay almacenamiento remoto
//  5. finaliza la solicitud sin devolver stock
//
// Si falla la generación o escritura del PDF no se registra nada y la
// solicitud se conserva.
func (s *ValeService) Generate(ctx context.Context, in dto.GenerateRequest) (*dto.GenerateResponse, error) {
	requester := strings.TrimSpace(in.Requester)
	preparer := strings.TrimSpace(in.Preparer)
	if requester == "" {
		return nil, fmt.Errorf("%w: debe seleccionar un solicitante", domain.ErrInvalidInput)
	}
	if preparer == "" {
		return nil, fmt.Errorf("%w: debe seleccionar un usuario de bodega", domain.ErrInvalidInput)
	}
	copies := in.Copies
	if copies < 1 {
		copies = s.opts.DefaultCopies
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.ledger.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyVale
	}
	if err := s.ensureHistoryDir(); err != nil {
		return nil, err
	}

	number, pr := s.registry.ReserveNumber()
	s.warnPersistence("reservar número", pr)

	emitted := s.now()
	padded := entity.PadNumber(number)
	base := fmt.Sprintf("solicitud_%s_%s", padded, emitted.Format(FileTimestampLayout))
	pdfName := base + ".pdf"
	jsonName := base + ".json"

	items := make([]entity.SidecarItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, entity.SidecarItemFrom(l))
	}

	header := entity.ValeHeader{
		Title:     s.opts.Title,
		Number:    number,
		Requester: requester,
		Preparer:  preparer,
		EmittedAt: emitted,
	}
	doc, err := s.renderer.RenderVale(header, items)
	if err != nil {
		return nil, fmt.Errorf("generar vale %s: %w", padded, err)
	}
	pdfPath := s.historyPath(pdfName)
	if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
		return nil, fmt.Errorf("guardar vale %s: %w", pdfName, err)
	}

	sidecar := entity.Sidecar{
		Filename:     pdfName,
		EmissionTime: emitted.Format(entity.TimestampLayout),
		Requester:    requester,
		Preparer:     preparer,
		Number:       padded,
		Items:        items,
	}
	if err := s.writeSidecar(jsonName, sidecar); err != nil {
		s.log.Warn().Err(err).Str("file", jsonName).Msg("no se pudo guardar el JSON del vale")
		jsonName = ""
	}

	resp := &dto.GenerateResponse{
		Number:       number,
		PaddedNumber: padded,
		Document:     pdfName,
		Sidecar:      jsonName,
		ItemCount:    len(items),
	}

	if in.Print && s.printer != nil {
		printCtx, cancel := context.WithTimeout(ctx, s.opts.ExternalTimeout)
		err := s.printer.Print(printCtx, pdfPath, copies)
		cancel()
		if err != nil {
			s.log.Error().Err(err).Str("file", pdfName).Msg("fallo al enviar a la impresora")
			resp.PrintError = err.Error()
		} else {
			resp.Printed = true
		}
	}

	_, pr = s.registry.AppendEntry(number, pdfName, jsonName, len(items))
	s.warnPersistence("registrar vale", pr)
	resp.PersistenceError = persistenceMessage(pr)

	if s.archiver != nil {
		files := []string{pdfPath}
		if jsonName != "" {
			files = append(files, s.historyPath(jsonName))
		}
		archiveCtx, cancel := context.WithTimeout(ctx, s.opts.ExternalTimeout)
		err := s.archiver.Archive(archiveCtx, emitted.Format("2006/01"), files...)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Str("file", pdfName).Msg("no se pudo archivar el vale")
			resp.ArchiveError = err.Error()
		}
	}

	s.ledger.Finalize()
	s.log.Info().Int("number", number).Str("pdf", pdfName).Int("items", len(items)).Msg("vale generado")
	return resp, nil
}

func (s *ValeService) writeSidecar(name string, sc entity.Sidecar) error {
	raw, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.historyPath(name), raw, 0o644)
}
