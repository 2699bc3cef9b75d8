package vale_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/application/vale"
	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/registry"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeLoader struct {
	rows  []entity.InventoryRow
	err   error
	block chan struct{}
}

func (f *fakeLoader) Load(ctx context.Context, _, _ string, progress func(int, int, string)) ([]entity.InventoryRow, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if progress != nil {
		progress(len(f.rows), len(f.rows), "Procesando datos...")
	}
	return f.rows, f.err
}

type fakeRenderer struct {
	failVale    bool
	failUnified bool
	unified     [][]entity.UnifiedLine
}

func (f *fakeRenderer) RenderVale(h entity.ValeHeader, _ []entity.SidecarItem) ([]byte, error) {
	if f.failVale {
		return nil, errors.New("render roto")
	}
	return []byte("%PDF-vale-" + h.PaddedNumber()), nil
}

func (f *fakeRenderer) RenderUnified(_ string, lines []entity.UnifiedLine, _ time.Time) ([]byte, error) {
	if f.failUnified {
		return nil, errors.New("render roto")
	}
	f.unified = append(f.unified, lines)
	return []byte("%PDF-unificado"), nil
}

func (f *fakeRenderer) RenderList(_ string, _ []entity.RegistryEntry, _ time.Time) ([]byte, error) {
	return []byte("%PDF-listado"), nil
}

type fakeMerger struct {
	inputs []string
}

func (f *fakeMerger) MergeFiles(inputs []string, output string) error {
	f.inputs = inputs
	return os.WriteFile(output, []byte("%PDF-concat"), 0o644)
}

type mockPrinter struct {
	mock.Mock
}

func (m *mockPrinter) Print(ctx context.Context, path string, copies int) error {
	return m.Called(ctx, path, copies).Error(0)
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Archive(ctx context.Context, prefix string, files ...string) error {
	return m.Called(ctx, prefix, files).Error(0)
}

type fakeExporter struct{}

func (fakeExporter) ExportRegistry(path string, _ []entity.RegistryEntry) error {
	return os.WriteFile(path, []byte("xlsx"), 0o644)
}

type memSettings struct {
	dir string
}

func (m *memSettings) LastInventoryDir() (string, bool) { return m.dir, m.dir != "" }
func (m *memSettings) SetLastInventoryDir(dir string)   { m.dir = dir }

// ── helpers ───────────────────────────────────────────────────────────────────

var now = time.Date(2026, 3, 5, 14, 30, 0, 0, time.Local)

func sampleRows() []entity.InventoryRow {
	exp := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	return []entity.InventoryRow{
		{Index: 0, ProductName: "Agar", Code: "A1", Lot: "L1", Location: "B1", Expiry: &exp, Stock: 10},
		{Index: 1, ProductName: "Placa", Code: "P1", Lot: "L2", Location: "B2", Stock: 4},
	}
}

type fixture struct {
	svc      *vale.ValeService
	dir      string
	reg      *registry.ValeRegistry
	renderer *fakeRenderer
	merger   *fakeMerger
	printer  *mockPrinter
	archiver *mockArchiver
	settings *memSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		reg:      registry.New(dir, registry.WithClock(func() time.Time { return now })),
		renderer: &fakeRenderer{},
		merger:   &fakeMerger{},
		printer:  new(mockPrinter),
		archiver: new(mockArchiver),
		settings: &memSettings{},
	}
	f.svc = vale.NewValeService(vale.Deps{
		Registry: f.reg,
		Loader:   &fakeLoader{rows: sampleRows()},
		Renderer: f.renderer,
		Merger:   f.merger,
		Printer:  f.printer,
		Archiver: f.archiver,
		Exporter: fakeExporter{},
		Settings: f.settings,
		Clock:    func() time.Time { return now },
	}, vale.Options{Title: "Vale de consumo", DefaultCopies: 2})
	t.Cleanup(f.svc.Close)

	_, err := f.svc.Load(context.Background(), filepath.Join(dir, "stock.xlsx"))
	require.NoError(t, err)
	return f
}

func writeSidecar(t *testing.T, dir, pdfName string, items []entity.SidecarItem) {
	t.Helper()
	raw, err := json.Marshal(entity.Sidecar{Filename: pdfName, Items: items})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, strings.TrimSuffix(pdfName, ".pdf")+".json"), raw, 0o644))
}

// ── Generate ──────────────────────────────────────────────────────────────────

func TestValeService_GenerateEscribeRegistraYFinaliza(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(0, 3)
	require.NoError(t, err)

	f.printer.On("Print", mock.Anything, mock.Anything, 2).Return(nil).Once()
	f.archiver.On("Archive", mock.Anything, "2026/03", mock.Anything).Return(nil).Once()

	resp, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: " Ana ", Preparer: "Luis", Print: true})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Number)
	assert.Equal(t, "001", resp.PaddedNumber)
	assert.Equal(t, "solicitud_001_20260305_143000.pdf", resp.Document)
	assert.Equal(t, "solicitud_001_20260305_143000.json", resp.Sidecar)
	assert.True(t, resp.Printed)
	assert.Empty(t, resp.PersistenceError)
	assert.FileExists(t, filepath.Join(f.dir, resp.Document))

	raw, err := os.ReadFile(filepath.Join(f.dir, resp.Sidecar))
	require.NoError(t, err)
	var sc entity.Sidecar
	require.NoError(t, json.Unmarshal(raw, &sc))
	assert.Equal(t, "Ana", sc.Requester)
	assert.Equal(t, "001", sc.Number)
	require.Len(t, sc.Items, 1)
	assert.Equal(t, 3, sc.Items[0].Quantity)
	assert.Equal(t, "2027-01-31", sc.Items[0].Expiry)
	assert.Contains(t, string(raw), `"Stock_Original_Index"`)

	e, err := f.reg.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, entity.ValeStatusPending, e.Status)
	assert.Equal(t, 1, e.ItemCount)

	// la solicitud se vacía sin devolver stock
	assert.Zero(t, f.svc.Current().Count)
	inv := f.svc.Inventory(dto.InventoryQuery{Product: "agar"})
	require.Len(t, inv.Rows, 1)
	assert.Equal(t, 7, inv.Rows[0].Stock)

	f.printer.AssertExpectations(t)
	f.archiver.AssertExpectations(t)
}

func TestValeService_GenerateFallaImpresionNoAborta(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(1, 1)
	require.NoError(t, err)

	f.printer.On("Print", mock.Anything, mock.Anything, 5).Return(domain.ErrPrinterUnavailable).Once()
	f.archiver.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket caído")).Once()

	resp, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis", Copies: 5, Print: true})
	require.NoError(t, err)
	assert.False(t, resp.Printed)
	assert.NotEmpty(t, resp.PrintError)
	assert.Equal(t, "bucket caído", resp.ArchiveError)
	assert.Equal(t, 1, f.reg.Len())
}

// stalledPrinter no responde hasta que vence el contexto.
type stalledPrinter struct{}

func (stalledPrinter) Print(ctx context.Context, _ string, _ int) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestValeService_GenerateLlamadasExternasConTope(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(0, 1)
	require.NoError(t, err)

	hasDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	f.printer.On("Print", hasDeadline, mock.Anything, 2).Return(nil).Once()
	f.archiver.On("Archive", hasDeadline, mock.Anything, mock.Anything).Return(nil).Once()

	_, err = f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis", Print: true})
	require.NoError(t, err)
	f.printer.AssertExpectations(t)
	f.archiver.AssertExpectations(t)
}

func TestValeService_GenerateImpresoraColgadaLiberaServicio(t *testing.T) {
	dir := t.TempDir()
	svc := vale.NewValeService(vale.Deps{
		Registry: registry.New(dir),
		Loader:   &fakeLoader{rows: sampleRows()},
		Renderer: &fakeRenderer{},
		Printer:  stalledPrinter{},
		Clock:    func() time.Time { return now },
	}, vale.Options{Title: "Vale", ExternalTimeout: 50 * time.Millisecond})
	t.Cleanup(svc.Close)
	_, err := svc.Load(context.Background(), filepath.Join(dir, "stock.xlsx"))
	require.NoError(t, err)
	_, err = svc.Reserve(0, 1)
	require.NoError(t, err)

	done := make(chan *dto.GenerateResponse, 1)
	go func() {
		resp, err := svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis", Print: true})
		if err == nil {
			done <- resp
		}
		close(done)
	}()

	select {
	case resp, ok := <-done:
		require.True(t, ok, "Generate no debe fallar por la impresora")
		assert.False(t, resp.Printed)
		assert.Contains(t, resp.PrintError, context.DeadlineExceeded.Error())
	case <-time.After(2 * time.Second):
		t.Fatal("Generate quedó bloqueado esperando a la impresora")
	}

	// El servicio vuelve a atender otras operaciones.
	assert.Zero(t, svc.Current().Count)
}

func TestValeService_GenerateFallaRenderConservaSolicitud(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(0, 2)
	require.NoError(t, err)
	f.renderer.failVale = true

	_, err = f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis"})
	require.Error(t, err)
	assert.Equal(t, 1, f.svc.Current().Count)
	assert.Zero(t, f.reg.Len())
	assert.Equal(t, 1, f.reg.Sequence(), "el número reservado queda consumido")

	f.renderer.failVale = false
	resp, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Number)
}

func TestValeService_GenerateValidaEntrada(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis"})
	assert.ErrorIs(t, err, domain.ErrEmptyVale)

	_, err = f.svc.Reserve(0, 1)
	require.NoError(t, err)
	_, err = f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "  ", Preparer: "Luis"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.reg.Sequence())
}

func TestValeService_ReserveSinInventario(t *testing.T) {
	svc := vale.NewValeService(vale.Deps{Registry: registry.New(t.TempDir())}, vale.Options{})
	defer svc.Close()

	_, err := svc.Reserve(0, 1)
	assert.ErrorIs(t, err, domain.ErrNoInventory)
}

func TestValeService_ReserveStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(1, 5)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── Carga ─────────────────────────────────────────────────────────────────────

func TestValeService_StartLoadEnSegundoPlano(t *testing.T) {
	dir := t.TempDir()
	loader := &fakeLoader{rows: sampleRows(), block: make(chan struct{})}
	settings := &memSettings{}
	svc := vale.NewValeService(vale.Deps{Registry: registry.New(dir), Loader: loader, Settings: settings}, vale.Options{})
	defer svc.Close()

	id, err := svc.StartLoad(filepath.Join(dir, "stock.xlsx"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, vale.LoadStateLoading, svc.LoadStatus().State)

	_, err = svc.StartLoad(filepath.Join(dir, "stock.xlsx"))
	assert.ErrorIs(t, err, domain.ErrLoadInProgress)

	close(loader.block)
	require.Eventually(t, func() bool {
		return svc.LoadStatus().State == vale.LoadStateDone
	}, 2*time.Second, 10*time.Millisecond)

	st := svc.LoadStatus()
	assert.Equal(t, id, st.JobID)
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 2, svc.Inventory(dto.InventoryQuery{}).Loaded)
	assert.Equal(t, dir, settings.dir)
}

func TestValeService_StartLoadInformaError(t *testing.T) {
	svc := vale.NewValeService(vale.Deps{
		Registry: registry.New(t.TempDir()),
		Loader:   &fakeLoader{err: domain.ErrNotFound},
	}, vale.Options{})
	defer svc.Close()

	_, err := svc.StartLoad("no-existe.xlsx")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return svc.LoadStatus().State == vale.LoadStateError
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, svc.LoadStatus().Error)
}

func TestValeService_DefaultInventoryPathPrefiereUltimaCarpeta(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stock.xlsx"), []byte("x"), 0o644))

	svc := vale.NewValeService(vale.Deps{
		Registry: registry.New(t.TempDir()),
		Settings: &memSettings{dir: dir},
	}, vale.Options{InventoryFile: "stock.xlsx"})
	defer svc.Close()
	assert.Equal(t, filepath.Join(dir, "stock.xlsx"), svc.DefaultInventoryPath())

	svc2 := vale.NewValeService(vale.Deps{Registry: registry.New(t.TempDir())}, vale.Options{InventoryFile: "otro.xlsx"})
	defer svc2.Close()
	assert.Equal(t, "otro.xlsx", svc2.DefaultInventoryPath())
}

// ── Índice ────────────────────────────────────────────────────────────────────

func TestValeService_ListRegistryReindexaSiEstaVacio(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "solicitud_004_20260101_100000.pdf"), []byte("%PDF"), 0o644))

	out, err := f.svc.ListRegistry("")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Reindexed)
	require.Len(t, out.Entries, 1)

	_, err = f.svc.ListRegistry("Cerrado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValeService_SetStatusYUpdateEntry(t *testing.T) {
	f := newFixture(t)
	f.reg.AppendEntry(1, "a.pdf", "", 1)
	f.reg.AppendEntry(2, "b.pdf", "", 1)

	res, err := f.svc.SetStatus(dto.SetStatusRequest{Numbers: []int{1, 2, 9}, Status: "Descontado"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)

	out, err := f.svc.ListRegistry("Descontado")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	voided := "Anulado"
	upd, err := f.svc.UpdateEntry(1, dto.UpdateEntryRequest{Status: &voided})
	require.NoError(t, err)
	assert.Equal(t, 1, upd.Updated)

	_, err = f.svc.UpdateEntry(99, dto.UpdateEntryRequest{Status: &voided})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValeService_RegisterVoucherAsignaNumero(t *testing.T) {
	f := newFixture(t)
	e, err := f.svc.RegisterVoucher(dto.RegisterVoucherRequest{Document: "manual.pdf", ItemCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Number)
	assert.Equal(t, "Pendiente", e.Status)

	_, err = f.svc.RegisterVoucher(dto.RegisterVoucherRequest{Document: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValeService_CleanDatabaseBorraHistorial(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reserve(0, 1)
	require.NoError(t, err)
	f.archiver.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err = f.svc.Generate(context.Background(), dto.GenerateRequest{Requester: "Ana", Preparer: "Luis"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "notas.txt"), []byte("x"), 0o644))

	res := f.svc.CleanDatabase()
	assert.Equal(t, 2, res.Deleted)
	assert.Empty(t, res.Errors)
	assert.Zero(t, f.reg.Len())
	assert.Zero(t, f.reg.Sequence())
	assert.FileExists(t, filepath.Join(f.dir, registry.IndexFileName))
	assert.FileExists(t, filepath.Join(f.dir, "notas.txt"))
}

func TestValeService_Export(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Export(dto.ExportRequest{Status: "Pendiente", Format: "pdf"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.reg.AppendEntry(1, "a.pdf", "", 1)
	out, err := f.svc.Export(dto.ExportRequest{Status: "Pendiente", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "listado_solicitudes_pendiente_20260305_143000.pdf", out.File)
	assert.Equal(t, 1, out.Count)
	assert.FileExists(t, filepath.Join(f.dir, out.File))

	out, err = f.svc.Export(dto.ExportRequest{Format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "solicitudes_todas_20260305_143000.xlsx", out.File)

	_, err = f.svc.Export(dto.ExportRequest{Format: "csv"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Unificación ───────────────────────────────────────────────────────────────

func seedVoucher(t *testing.T, f *fixture, number int, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), []byte("%PDF"), 0o644))
	f.reg.AppendEntry(number, name, "", 1)
}

func TestValeService_MergeConsolidaLineas(t *testing.T) {
	f := newFixture(t)
	seedVoucher(t, f, 7, "solicitud_007_20260101_100000.pdf")
	seedVoucher(t, f, 12, "solicitud_012_20260102_100000.pdf")
	writeSidecar(t, f.dir, "solicitud_007_20260101_100000.pdf", []entity.SidecarItem{
		{ProductName: "Agar", Lot: "L1", Location: "B1", Expiry: "2027-01-31", Quantity: 2},
		{ProductName: "Placa", Lot: "L2", Location: "B2", Quantity: 1},
	})
	writeSidecar(t, f.dir, "solicitud_012_20260102_100000.pdf", []entity.SidecarItem{
		{ProductName: "Agar", Lot: "L1", Location: "B1", Expiry: "2027-01-31", Quantity: 5},
	})

	out, err := f.svc.Merge(dto.MergeRequest{Numbers: []int{12, 7}})
	require.NoError(t, err)
	assert.Equal(t, vale.MergeModeTable, out.Mode)
	assert.Equal(t, 2, out.Lines)
	assert.Equal(t, "solicitud_unificada_(7+12)_20260305_143000.pdf", out.File)

	require.Len(t, f.renderer.unified, 1)
	lines := f.renderer.unified[0]
	assert.Equal(t, "Agar", lines[0].ProductName)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, []string{"7", "12"}, lines[0].Origins)
	assert.Equal(t, []string{"7"}, lines[1].Origins)
}

func TestValeService_MergeLeeSidecarsHeredados(t *testing.T) {
	f := newFixture(t)
	seedVoucher(t, f, 3, "solicitud_003_20250101_100000.pdf")
	seedVoucher(t, f, 4, "solicitud_004_20250102_100000.pdf")
	legacy := `{"filename":"x.pdf","numero_correlativo":"003","items":[
		{"Producto":"Agar","Lote":12345,"Vencimiento":null,"Ubicacion":"B1","Cantidad":3,"Stock_Original_Index":0}]}`
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "solicitud_003_20250101_100000.json"), []byte(legacy), 0o644))
	writeSidecar(t, f.dir, "solicitud_004_20250102_100000.pdf", []entity.SidecarItem{
		{ProductName: "Agar", Lot: "12345", Location: "B1", Quantity: 2},
	})

	out, err := f.svc.Merge(dto.MergeRequest{Numbers: []int{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, vale.MergeModeTable, out.Mode)
	assert.Empty(t, out.MissingSidecars)
	assert.Equal(t, 1, out.Lines)

	require.Len(t, f.renderer.unified, 1)
	line := f.renderer.unified[0][0]
	assert.Equal(t, "12345", line.Lot)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, []string{"3", "4"}, line.Origins)
}

func TestValeService_MergeSinSidecarsConcatena(t *testing.T) {
	f := newFixture(t)
	seedVoucher(t, f, 1, "solicitud_001_20260101_100000.pdf")
	seedVoucher(t, f, 2, "solicitud_002_20260101_110000.pdf")

	out, err := f.svc.Merge(dto.MergeRequest{Numbers: []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, vale.MergeModeConcat, out.Mode)
	assert.Equal(t, "solicitud_unificada_20260305_143000.pdf", out.File)
	assert.Len(t, f.merger.inputs, 2)
	assert.Len(t, out.MissingSidecars, 2)
}

func TestValeService_MergeFallaTablaUsaConcatenado(t *testing.T) {
	f := newFixture(t)
	f.renderer.failUnified = true
	seedVoucher(t, f, 1, "solicitud_001_20260101_100000.pdf")
	seedVoucher(t, f, 2, "solicitud_002_20260101_110000.pdf")
	writeSidecar(t, f.dir, "solicitud_001_20260101_100000.pdf", []entity.SidecarItem{
		{ProductName: "Agar", Lot: "L1", Location: "B1", Quantity: 1},
	})

	out, err := f.svc.Merge(dto.MergeRequest{Numbers: []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, vale.MergeModeConcat, out.Mode)
	assert.Equal(t, "solicitud_unificada_(1)_20260305_143000.pdf", out.File)
}

func TestValeService_MergeRequiereDosPDF(t *testing.T) {
	f := newFixture(t)
	seedVoucher(t, f, 1, "solicitud_001_20260101_100000.pdf")
	f.reg.AppendEntry(2, "falta.pdf", "", 1)

	_, err := f.svc.Merge(dto.MergeRequest{Numbers: []int{1, 2, 3}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
