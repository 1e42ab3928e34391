package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Timezone string   `koanf:"timezone"`
	Families int      `koanf:"families"`
	Store    Store    `koanf:"store"`
	Pages    Pages    `koanf:"pages"`
	Draw     Draw     `koanf:"draw"`
	Remote   Remote   `koanf:"remote"`
	Database Database `koanf:"db"`
}

type Store struct {
	// Driver is one of "sqlite", "postgres" or "memory".
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
}

type Pages struct {
	// Source is one of "embedded", "dir" or "http".
	Source  string `koanf:"source"`
	Dir     string `koanf:"dir"`
	BaseURL string `koanf:"baseurl"`
}

type Draw struct {
	DurationMs int `koanf:"durationms"`
	IntervalMs int `koanf:"intervalms"`
}

// Remote points at a transaction source serving GET {url} with the
// /api/transactions contract. Import is disabled when URL is empty.
type Remote struct {
	URL string `koanf:"url"`
}

type Database struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	User    string `koanf:"user"`
	Pass    string `koanf:"pass"`
	Name    string `koanf:"name"`
	Schema  string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Addr:     ":8080",
		Timezone: "Asia/Jakarta",
		Families: 48,
		Store: Store{
			Driver: "sqlite",
			Path:   "data/agustusan.db",
		},
		Pages: Pages{
			Source: "embedded",
		},
		Draw: Draw{
			DurationMs: 3000,
			IntervalMs: 80,
		},
		Database: Database{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "agustusan",
			Pass:    "",
			Name:    "agustusan",
			Schema:  "public",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "HUTRI_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "HUTRI_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
