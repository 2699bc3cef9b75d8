package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

var emitted = time.Date(2025, 11, 13, 15, 4, 9, 0, time.Local)

func sampleItems() []entity.SidecarItem {
	return []entity.SidecarItem{
		{ProductName: "Gel X", Lot: "L1", Location: "Cámara 1", Expiry: "2026-03-01", Quantity: 5},
		{ProductName: "Caldo BHI", Lot: "L2", Location: "Estante A", Quantity: 2},
	}
}

func TestValeRenderer_RenderVale(t *testing.T) {
	r := NewValeRenderer(0)
	out, err := r.RenderVale(entity.ValeHeader{
		Title:     "VALE DE CONSUMO – BIOPLATES",
		Number:    7,
		Requester: "Ana",
		Preparer:  "Luis",
		EmittedAt: emitted,
	}, sampleItems())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestValeRenderer_RenderValeSinNumeroNiItems(t *testing.T) {
	out, err := NewValeRenderer(10).RenderVale(entity.ValeHeader{Title: "Vale", EmittedAt: emitted}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestValeRenderer_RenderUnifiedYList(t *testing.T) {
	r := NewValeRenderer(0)

	unified, err := r.RenderUnified("Vale unificado", []entity.UnifiedLine{
		{Origins: []string{"1", "3"}, ProductName: "Gel X", Lot: "L1", Location: "Cámara 1", Expiry: "2026-03-01", Quantity: 9},
	}, emitted)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(unified, []byte("%PDF")))

	list, err := r.RenderList("Listado de solicitudes - Pendiente", []entity.RegistryEntry{
		{Number: 1, Status: entity.ValeStatusPending, CreatedAt: "2025-11-13T15:04:09", Document: "solicitud_001.pdf", ItemCount: 2},
	}, emitted)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(list, []byte("%PDF")))
}

func TestMerger_MergeFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewValeRenderer(0)
	var inputs []string
	for i, n := range []int{1, 2} {
		out, err := r.RenderVale(entity.ValeHeader{Title: "Vale", Number: n, EmittedAt: emitted}, sampleItems())
		require.NoError(t, err)
		p := filepath.Join(dir, "v"+string(rune('a'+i))+".pdf")
		require.NoError(t, os.WriteFile(p, out, 0o644))
		inputs = append(inputs, p)
	}

	output := filepath.Join(dir, "unificado.pdf")
	require.NoError(t, NewMerger().MergeFiles(inputs, output))

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestMerger_RequiereDosDocumentos(t *testing.T) {
	err := NewMerger().MergeFiles([]string{"a.pdf"}, filepath.Join(t.TempDir(), "x.pdf"))
	assert.Error(t, err)
}
