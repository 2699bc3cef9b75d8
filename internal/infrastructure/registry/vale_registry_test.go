package registry_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/infrastructure/registry"
)

func fixedClock(ts string) func() time.Time {
	t, err := time.Parse(entity.TimestampLayout, ts)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func touch(t *testing.T, dir, name string, mod time.Time) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.Chtimes(p, mod, mod))
}

func TestValeRegistry_ReserveNumberEsMonotonoYPersiste(t *testing.T) {
	dir := t.TempDir()
	r := registry.New(dir)

	n1, res := r.ReserveNumber()
	require.True(t, res.OK())
	n2, _ := r.ReserveNumber()
	assert.Equal(t, 1, n1)
	assert.Equal(t, 2, n2)

	// La secuencia se guarda aunque no haya entradas: el número 2 no se reutiliza.
	reopened := registry.New(dir)
	assert.Equal(t, 2, reopened.Sequence())
	n3, _ := reopened.ReserveNumber()
	assert.Equal(t, 3, n3)
	assert.Equal(t, 0, reopened.Len())
}

func TestValeRegistry_AppendEntrySubeSecuencia(t *testing.T) {
	dir := t.TempDir()
	r := registry.New(dir, registry.WithClock(fixedClock("2025-11-13T15:04:09")))

	e, res := r.AppendEntry(7, filepath.Join(dir, "solicitud_007.pdf"), "solicitud_007.json", 3)
	require.True(t, res.OK())
	assert.Equal(t, 7, e.Number)
	assert.Equal(t, entity.ValeStatusPending, e.Status)
	assert.Equal(t, "2025-11-13T15:04:09", e.CreatedAt)
	assert.Equal(t, "solicitud_007.pdf", e.Document, "se guarda solo el nombre de archivo")
	assert.Equal(t, 7, r.Sequence())

	// Un número menor no baja la secuencia.
	_, _ = r.AppendEntry(2, "b.pdf", "", 1)
	assert.Equal(t, 7, r.Sequence())
	n, _ := r.ReserveNumber()
	assert.Equal(t, 8, n)
}

func TestValeRegistry_FormatoDeArchivo(t *testing.T) {
	dir := t.TempDir()
	r := registry.New(dir, registry.WithClock(fixedClock("2025-11-13T15:04:09")))
	_, _ = r.RegisterVoucher("solicitud_001.pdf", "solicitud_001.json", 2)

	raw, err := os.ReadFile(filepath.Join(dir, registry.IndexFileName))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 1, got["sequence"])
	vales, ok := got["vales"].([]any)
	require.True(t, ok)
	require.Len(t, vales, 1)
	entry := vales[0].(map[string]any)
	assert.Equal(t, "Pendiente", entry["status"])
	assert.Equal(t, "solicitud_001.pdf", entry["pdf"])
	assert.Equal(t, "solicitud_001.json", entry["json"])
	assert.EqualValues(t, 2, entry["items_count"])
	assert.Equal(t, "2025-11-13T15:04:09", entry["created_at"])
}

func TestValeRegistry_ListOrdenaDescendenteYFiltra(t *testing.T) {
	dir := t.TempDir()
	clock := "2025-01-01T10:00:00"
	r := registry.New(dir, registry.WithClock(func() time.Time { return fixedClock(clock)() }))

	_, _ = r.RegisterVoucher("a.pdf", "", 1)
	clock = "2025-03-01T10:00:00"
	_, _ = r.RegisterVoucher("b.pdf", "", 1)
	clock = "2025-02-01T10:00:00"
	_, _ = r.RegisterVoucher("c.pdf", "", 1)

	all := r.List("")
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{all[0].Number, all[1].Number, all[2].Number})

	_, _ = r.SetStatus([]int{3}, entity.ValeStatusVoided)
	voided := r.List(entity.ValeStatusVoided)
	require.Len(t, voided, 1)
	assert.Equal(t, 3, voided[0].Number)
	assert.Len(t, r.List(entity.ValeStatusPending), 2)
}

func TestValeRegistry_SetStatusCuentaYPersiste(t *testing.T) {
	dir := t.TempDir()
	r := registry.New(dir)
	for i := 0; i < 3; i++ {
		_, _ = r.RegisterVoucher("v.pdf", "", 1)
	}

	count, res := r.SetStatus([]int{1, 3, 99}, entity.ValeStatusDeducted)
	require.True(t, res.OK())
	assert.Equal(t, 2, count)

	count, _ = r.SetStatus([]int{42}, entity.ValeStatusDeducted)
	assert.Zero(t, count)

	reopened := registry.New(dir)
	e1, err := reopened.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, entity.ValeStatusDeducted, e1.Status)
	e2, err := reopened.FindByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, entity.ValeStatusPending, e2.Status)
}

func TestValeRegistry_FindByNumberInexistente(t *testing.T) {
	r := registry.New(t.TempDir())
	_, err := r.FindByNumber(5)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestValeRegistry_UpdateEntry(t *testing.T) {
	r := registry.New(t.TempDir())
	_, _ = r.RegisterVoucher("a.pdf", "a.json", 1)

	count := 4
	doc := "otro.pdf"
	changed, res := r.UpdateEntry(1, registry.EntryUpdate{ItemCount: &count, Document: &doc})
	require.True(t, res.OK())
	assert.True(t, changed)

	e, err := r.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, 4, e.ItemCount)
	assert.Equal(t, "otro.pdf", e.Document)

	changed, _ = r.UpdateEntry(1, registry.EntryUpdate{ItemCount: &count})
	assert.False(t, changed, "mismo valor no cuenta como cambio")
	changed, _ = r.UpdateEntry(9, registry.EntryUpdate{ItemCount: &count})
	assert.False(t, changed)
}

func TestValeRegistry_UpdateEntryGuardaSoloNombreDeArchivo(t *testing.T) {
	dir := t.TempDir()
	r := registry.New(dir)
	_, _ = r.RegisterVoucher("a.pdf", "a.json", 1)

	doc := filepath.Join("..", "..", "x.pdf")
	sc := filepath.Join("sub", "y.json")
	changed, res := r.UpdateEntry(1, registry.EntryUpdate{Document: &doc, Sidecar: &sc})
	require.True(t, res.OK())
	assert.True(t, changed)

	e, err := r.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "x.pdf", e.Document)
	assert.Equal(t, "y.json", e.Sidecar)

	up := ".."
	_, _ = r.UpdateEntry(1, registry.EntryUpdate{Document: &up})
	e, _ = r.FindByNumber(1)
	assert.Empty(t, e.Document, "un nombre que sale de la carpeta queda vacío")

	// Lo persistido tampoco conserva directorios.
	reopened := registry.New(dir)
	e, err = reopened.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "y.json", e.Sidecar)
}

func TestValeRegistry_ReindexEsIdempotente(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.Local)
	touch(t, dir, "solicitud_b.pdf", base.Add(2*time.Hour))
	touch(t, dir, "solicitud_a.pdf", base)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solicitud_b.json"),
		[]byte(`{"emission_time":"2025-04-30T09:30:00","items":[{},{},{}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0o644))

	r := registry.New(dir)
	res, pr := r.Reindex()
	require.True(t, pr.OK())
	assert.Equal(t, 2, res.Added)
	assert.Zero(t, res.Skipped)

	// Orden por fecha de modificación: a (más antiguo) recibe el 1.
	a, err := r.FindByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "solicitud_a.pdf", a.Document)
	assert.Empty(t, a.Sidecar)
	assert.Equal(t, base.Format(entity.TimestampLayout), a.CreatedAt)

	b, err := r.FindByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, "solicitud_b.json", b.Sidecar)
	assert.Equal(t, 3, b.ItemCount)
	assert.Equal(t, "2025-04-30T09:30:00", b.CreatedAt)

	again, _ := r.Reindex()
	assert.Zero(t, again.Added)
	assert.Equal(t, 2, again.Skipped)
	assert.Equal(t, 2, r.Sequence())
}

func TestValeRegistry_ResetAllNoBorraArchivos(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "solicitud_a.pdf", time.Now())
	r := registry.New(dir)
	_, _ = r.Reindex()
	require.Equal(t, 1, r.Len())

	require.True(t, r.ResetAll().OK())
	assert.Zero(t, r.Len())
	assert.Zero(t, r.Sequence())
	assert.FileExists(t, filepath.Join(dir, "solicitud_a.pdf"))

	reopened := registry.New(dir)
	assert.Zero(t, reopened.Sequence())
}

func TestValeRegistry_ArchivoCorruptoIniciaVacio(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registry.IndexFileName), []byte("{no es json"), 0o644))

	r := registry.New(dir)
	assert.Zero(t, r.Sequence())
	assert.Empty(t, r.List(""))

	n, res := r.ReserveNumber()
	assert.True(t, res.OK())
	assert.Equal(t, 1, n)
}

func TestValeRegistry_FallaDeEscrituraSeInformaSinPerderEstado(t *testing.T) {
	dir := t.TempDir()
	// Un directorio con el nombre del índice hace fallar la lectura y la escritura.
	require.NoError(t, os.Mkdir(filepath.Join(dir, registry.IndexFileName), 0o755))

	r := registry.New(dir)
	n, res := r.ReserveNumber()
	assert.False(t, res.OK())
	assert.Error(t, res.Err)
	assert.Equal(t, 1, n)

	e, res := r.AppendEntry(n, "a.pdf", "", 1)
	assert.False(t, res.OK())
	assert.Equal(t, 1, e.Number)
	assert.Equal(t, 1, r.Len(), "el estado en memoria se conserva")
}
