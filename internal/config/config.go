package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr   string
	SchoolName string

	DBDriver string // sqlite|postgres|memory
	DBDSN    string

	// Defaults used when a report request omits the period.
	DefaultTerm     string
	DefaultExamType string

	ArchiveReports bool   // write a copy of every exported CSV report
	BlobBasePath   string // base dir for archived reports

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:        addr,
		SchoolName:      envOr("SCHOOL_NAME", "Sankofa Basic School"),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		DefaultTerm:     envOr("DEFAULT_TERM", "Term 3"),
		DefaultExamType: envOr("DEFAULT_EXAM_TYPE", "End of Term"),
		ArchiveReports:  envBool("ARCHIVE_REPORTS", true),
		BlobBasePath:    envOr("BLOB_BASE_PATH", "./data"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:8501"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
