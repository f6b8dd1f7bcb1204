package config

import (
	"log/slog"
	"time"
)

// fontes de dados do cliente
const (
	SourceRemote   = "remote"
	SourceSnapshot = "snapshot"
)

type DirectoryConfig struct {
	Source       string // remote | snapshot
	APIBaseURL   string
	SnapshotPath string // vazio = embarcado
	WSURL        string // vazio = sem atualização ao vivo
	LogFile      string
	LogLevel     slog.Level
	Timeout      time.Duration
	RatePerSec   float64
	RateBurst    int
	ServerFilter bool // manda os critérios para a API (só cmd/api entende)
}

func LoadDirectoryConfig() *DirectoryConfig {
	return &DirectoryConfig{
		Source:       normalizeSource(getenv("DIRECTORY_SOURCE", defaultSource)),
		APIBaseURL:   getenvAny("http://localhost:3001", "DIRECTORY_API_BASE_URL", "API_BASE_URL"),
		SnapshotPath: getenv("DIRECTORY_SNAPSHOT", ""),
		WSURL:        getenv("DIRECTORY_WS_URL", ""),
		LogFile:      getenv("DIRECTORY_LOG_FILE", "directory.log"),
		LogLevel:     parseLevel(getenv("LOG_LEVEL", "info")),
		Timeout:      parseDuration("DIRECTORY_TIMEOUT", 10*time.Second),
		RatePerSec:   parseFloat("DIRECTORY_RATE", 10),
		RateBurst:    parseInt("DIRECTORY_BURST", 5),
		ServerFilter: parseBool("DIRECTORY_SERVER_FILTER", false),
	}
}

func normalizeSource(s string) string {
	if s == SourceSnapshot {
		return SourceSnapshot
	}
	return SourceRemote
}

// DefaultSource é a fonte escolhida na compilação (tag "snapshot").
func DefaultSource() string { return defaultSource }
