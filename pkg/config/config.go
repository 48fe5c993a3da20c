package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	Data   DataConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// DataConfig ubicación del archivo plano de medicamentos.
type DataConfig struct {
	File        string // ruta del CSV; el directorio se crea si no existe
	AtomicWrite bool   // reescritura vía archivo temporal + rename
}

// HTTPConfig configuración del servidor HTTP.
// Por defecto escucha solo en loopback: el único cliente es el front-end local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReportConfig umbrales de los reportes de vencimiento y stock bajo.
type ReportConfig struct {
	ExpiryWindowDays  int
	LowStockThreshold int
	Title             string // encabezado del PDF
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_FILE, HTTP_PORT, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "farmacia-inventario"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			File:        getString(v, "DATA_FILE", "data/medicamentos.csv"),
			AtomicWrite: getBool(v, "DATA_ATOMIC_WRITE", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Report: ReportConfig{
			ExpiryWindowDays:  getInt(v, "REPORT_EXPIRY_WINDOW_DAYS", 30),
			LowStockThreshold: getInt(v, "REPORT_LOW_STOCK_THRESHOLD", 5),
			Title:             getString(v, "REPORT_TITLE", "Inventario de farmacia"),
		},
	}

	if strings.TrimSpace(cfg.Data.File) == "" {
		return nil, fmt.Errorf("config: DATA_FILE no puede ser vacío")
	}
	if cfg.Report.ExpiryWindowDays <= 0 {
		return nil, fmt.Errorf("config: REPORT_EXPIRY_WINDOW_DAYS debe ser > 0, recibido %d", cfg.Report.ExpiryWindowDays)
	}
	if cfg.Report.LowStockThreshold <= 0 {
		return nil, fmt.Errorf("config: REPORT_LOW_STOCK_THRESHOLD debe ser > 0, recibido %d", cfg.Report.LowStockThreshold)
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
		return v.GetBool(key)
	}
	return def
}
