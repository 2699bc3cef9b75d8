package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Vale    ValeConfig
	Print   PrintConfig
	PDF     PDFConfig
	Archive ArchiveConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ValeConfig rutas y valores por defecto del flujo de vales.
type ValeConfig struct {
	InventoryFile  string // planilla que se intenta cargar al iniciar
	AreaFilter     string // vacío = sin filtro de área
	HistoryDir     string // PDFs, sidecars JSON y vales_index.json
	DataDir        string // solicitantes.json y usuarios_bodega.json
	SettingsFile   string
	Title          string
	ReindexMinutes int // 0 = sin reindexación periódica
}

// ReindexInterval devuelve el intervalo de reindexación o 0 si está desactivada.
func (c ValeConfig) ReindexInterval() time.Duration {
	if c.ReindexMinutes <= 0 {
		return 0
	}
	return time.Duration(c.ReindexMinutes) * time.Minute
}

// PrintConfig impresión vía spooler del sistema operativo.
type PrintConfig struct {
	Enabled    bool
	Copies     int
	Command    string // lp en Linux/macOS
	SumatraPDF string // ruta opcional a SumatraPDF.exe (Windows)

	// TimeoutSeconds tope de impresión y archivo al generar un vale.
	TimeoutSeconds int
}

// Timeout tope de las llamadas externas; 0 deja el valor por omisión del servicio.
func (c PrintConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PDFConfig márgenes en milímetros.
type PDFConfig struct {
	Margin float64
}

// ArchiveConfig archivo opcional de vales en MinIO / S3. Endpoint vacío = desactivado.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled indica si hay un endpoint configurado.
func (c ArchiveConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, VALE_HISTORY_DIR, PRINT_ENABLED, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia ya preparada (tests).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "vale-consumo"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Vale: ValeConfig{
			InventoryFile:  getString(v, "VALE_INVENTORY_FILE", "Informe_stock_fisico.xlsx"),
			AreaFilter:     getString(v, "VALE_AREA_FILTER", "Bioplates"),
			HistoryDir:     getString(v, "VALE_HISTORY_DIR", "Vales_Historial"),
			DataDir:        getString(v, "VALE_DATA_DIR", "."),
			SettingsFile:   getString(v, "VALE_SETTINGS_FILE", "app_settings.json"),
			Title:          getString(v, "VALE_TITLE", "VALE DE CONSUMO – BIOPLATES"),
			ReindexMinutes: getInt(v, "VALE_REINDEX_MINUTES", 0),
		},
		Print: PrintConfig{
			Enabled:        getBool(v, "PRINT_ENABLED", false),
			Copies:         getInt(v, "PRINT_COPIES", 1),
			Command:        getString(v, "PRINT_COMMAND", "lp"),
			SumatraPDF:     getString(v, "SUMATRA_PDF_PATH", ""),
			TimeoutSeconds: getInt(v, "PRINT_TIMEOUT_SECONDS", 30),
		},
		PDF: PDFConfig{
			Margin: getFloat(v, "PDF_MARGIN", 18),
		},
		Archive: ArchiveConfig{
			Endpoint:  getString(v, "ARCHIVE_ENDPOINT", ""),
			AccessKey: getString(v, "ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getString(v, "ARCHIVE_SECRET_KEY", ""),
			Bucket:    getString(v, "ARCHIVE_BUCKET", "vales"),
			UseSSL:    getBool(v, "ARCHIVE_USE_SSL", false),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT fuera de rango: %d", cfg.HTTP.Port)
	}
	if cfg.Print.Copies < 1 {
		cfg.Print.Copies = 1
	}
	if cfg.Vale.HistoryDir == "" {
		return nil, fmt.Errorf("config: VALE_HISTORY_DIR no puede estar vacío")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
