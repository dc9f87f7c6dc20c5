package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// MetabaseConfig configures the embedded analytics dashboard. SecretKey is
// the Metabase embedding secret used to sign dashboard tokens.
type MetabaseConfig struct {
	SiteURL     string `yaml:"site_url" json:"site_url"`
	SecretKey   string `yaml:"secret_key" json:"secret_key"`
	DashboardID int    `yaml:"dashboard_id" json:"dashboard_id"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
	Metabase MetabaseConfig `yaml:"metabase" json:"metabase"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "auctiontrack",
		Location: "Asia/Shanghai",
		Workdir:  "/var/auctiontrack",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1880,
		JwtSecret: "9b6de5cc-auctiontrack-b712-x90x",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "auctiontrack",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/auctiontrack/auctiontrack.log",
	},
	Metabase: MetabaseConfig{
		SiteURL:     "http://localhost:3000",
		SecretKey:   "",
		DashboardID: 8,
	},
}

// InstallDefault writes the default configuration to cfile, refusing to
// overwrite an existing file.
func InstallDefault(cfile string) error {
	if _, err := os.Stat(cfile); err == nil {
		return fmt.Errorf("config file %s already exists", cfile)
	}
	data, err := yaml.Marshal(DefaultAppConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(cfile, data, 0644)
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

// LoadConfig loads yaml configuration from cfile, falling back to defaults.
// Secrets may be overridden through the environment so they stay out of
// config files.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(fmt.Errorf("read config %s: %w", cfile, err))
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(fmt.Errorf("parse config %s: %w", cfile, err))
		}
	}

	setEnvValue("AUCTIONTRACK_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("AUCTIONTRACK_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("AUCTIONTRACK_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("AUCTIONTRACK_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("AUCTIONTRACK_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvValue("METABASE_SITE_URL", func(v string) { cfg.Metabase.SiteURL = v })
	setEnvValue("METABASE_SECRET_KEY", func(v string) { cfg.Metabase.SecretKey = v })

	return cfg
}
