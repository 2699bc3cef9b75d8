package printing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vale-consumo/internal/domain"
)

type recorded struct {
	name string
	args []string
}

func recorder(calls *[]recorded, err error) CommandRunner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recorded{name: name, args: args})
		return err
	}
}

func tempPDF(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "vale.pdf")
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o644))
	return p
}

func TestOSPrinter_UnixUsaLp(t *testing.T) {
	var calls []recorded
	p := NewOSPrinter(Options{GOOS: "linux", Runner: recorder(&calls, nil)}, nil)
	path := tempPDF(t)

	require.NoError(t, p.Print(context.Background(), path, 0))
	require.Len(t, calls, 1)
	assert.Equal(t, "lp", calls[0].name)
	assert.Equal(t, []string{"-n", "1", path}, calls[0].args)
}

func TestOSPrinter_WindowsConSumatra(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "SumatraPDF.exe")
	require.NoError(t, os.WriteFile(exe, []byte("x"), 0o755))

	var calls []recorded
	p := NewOSPrinter(Options{GOOS: "windows", SumatraPDF: exe, Runner: recorder(&calls, nil)}, nil)
	path := tempPDF(t)

	require.NoError(t, p.Print(context.Background(), path, 2))
	require.Len(t, calls, 2, "una invocación por copia")
	assert.Equal(t, exe, calls[0].name)
	assert.Equal(t, []string{"-silent", "-print-to-default", path}, calls[0].args)
}

func TestOSPrinter_WindowsSinSumatra(t *testing.T) {
	t.Setenv("ProgramFiles", t.TempDir())
	t.Setenv("ProgramFiles(x86)", t.TempDir())
	p := NewOSPrinter(Options{GOOS: "windows", Runner: recorder(new([]recorded), nil)}, nil)

	err := p.Print(context.Background(), tempPDF(t), 1)
	assert.True(t, errors.Is(err, domain.ErrPrinterUnavailable))
}

func TestOSPrinter_ArchivoInexistente(t *testing.T) {
	p := NewOSPrinter(Options{GOOS: "linux", Runner: recorder(new([]recorded), nil)}, nil)
	err := p.Print(context.Background(), filepath.Join(t.TempDir(), "no.pdf"), 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOSPrinter_FallaDelSpooler(t *testing.T) {
	boom := errors.New("lp: no default destination")
	p := NewOSPrinter(Options{GOOS: "darwin", Command: "lpr", Runner: recorder(new([]recorded), boom)}, nil)
	err := p.Print(context.Background(), tempPDF(t), 1)
	assert.ErrorIs(t, err, boom)
}

func TestNoopPrinter(t *testing.T) {
	assert.NoError(t, NewNoopPrinter(nil).Print(context.Background(), "x.pdf", 3))
}
