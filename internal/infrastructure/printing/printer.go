// Package printing envía PDFs al spooler del sistema operativo.
package printing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// CommandRunner ejecuta un comando externo. Reemplazable en tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Options configuración del impresor del sistema.
type Options struct {
	Command    string // spooler en Linux/macOS; vacío = "lp"
	SumatraPDF string // ruta explícita a SumatraPDF.exe
	GOOS       string // vacío = runtime.GOOS
	Runner     CommandRunner
}

// OSPrinter imprime en la impresora predeterminada.
// Windows: SumatraPDF en modo silencioso. Resto: lp -n <copias>.
type OSPrinter struct {
	command string
	sumatra string
	goos    string
	run     CommandRunner
	log     *logger.Logger
}

// NewOSPrinter construye el impresor.
func NewOSPrinter(opts Options, log *logger.Logger) *OSPrinter {
	p := &OSPrinter{
		command: opts.Command,
		sumatra: opts.SumatraPDF,
		goos:    opts.GOOS,
		run:     opts.Runner,
		log:     log,
	}
	if p.command == "" {
		p.command = "lp"
	}
	if p.goos == "" {
		p.goos = runtime.GOOS
	}
	if p.run == nil {
		p.run = execRunner
	}
	if p.log == nil {
		p.log = logger.Nop()
	}
	return p
}

// Print envía copies copias de path (mínimo 1).
func (p *OSPrinter) Print(ctx context.Context, path string, copies int) error {
	if copies < 1 {
		copies = 1
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("printing: %s: %w", path, domain.ErrNotFound)
		}
		return fmt.Errorf("printing: %s: %w", path, err)
	}

	if p.goos == "windows" {
		exe := p.findSumatra()
		if exe == "" {
			return fmt.Errorf("printing: SumatraPDF no encontrado: %w", domain.ErrPrinterUnavailable)
		}
		for i := 0; i < copies; i++ {
			if err := p.run(ctx, exe, "-silent", "-print-to-default", path); err != nil {
				return fmt.Errorf("printing: SumatraPDF: %w", err)
			}
		}
		p.log.Info().Str("file", filepath.Base(path)).Int("copies", copies).Msg("PDF enviado a SumatraPDF")
		return nil
	}

	if err := p.run(ctx, p.command, "-n", strconv.Itoa(copies), path); err != nil {
		return fmt.Errorf("printing: %s: %w", p.command, err)
	}
	p.log.Info().Str("file", filepath.Base(path)).Int("copies", copies).Msg("PDF enviado al spooler")
	return nil
}

func (p *OSPrinter) findSumatra() string {
	candidates := []string{p.sumatra}
	for _, env := range []struct{ name, def string }{
		{"ProgramFiles", `C:\Program Files`},
		{"ProgramFiles(x86)", `C:\Program Files (x86)`},
	} {
		base := os.Getenv(env.name)
		if base == "" {
			base = env.def
		}
		candidates = append(candidates, filepath.Join(base, "SumatraPDF", "SumatraPDF.exe"))
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// NoopPrinter descarta los trabajos (impresión desactivada).
type NoopPrinter struct {
	log *logger.Logger
}

// NewNoopPrinter construye el impresor nulo.
func NewNoopPrinter(log *logger.Logger) *NoopPrinter {
	if log == nil {
		log = logger.Nop()
	}
	return &NoopPrinter{log: log}
}

// Print no hace nada.
func (p *NoopPrinter) Print(_ context.Context, path string, copies int) error {
	p.log.Debug().Str("file", filepath.Base(path)).Int("copies", copies).Msg("impresión desactivada")
	return nil
}
