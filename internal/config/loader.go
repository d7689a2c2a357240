package config

import (
	"fmt"
	"log"
	"mime"
	"os"
	"strconv"
	"strings"

	"httpmsg/internal/version"
	"httpmsg/types"

	"github.com/joho/godotenv"
)

const (
	defaultMaxBodySize = 65536
	minMaxBodySize     = 1024
	maxMaxBodySize     = 16777216
)

type config struct {
	mode types.OutputMode

	protocolVersion string
	inferHost       bool

	serverName         string
	defaultContentType string

	maxBodySize int64

	forwardedFor    bool
	requestIDLength int
}

func parse() (*config, error) {
	mode, err := parseMode()
	if err != nil {
		return nil, err
	}

	protocolVersion, err := parseProtocolVersion()
	if err != nil {
		return nil, err
	}

	inferHost := getenvBool("INFER_HOST", true)

	serverName := getenv("SERVER_HEADER", version.ServerName())

	contentType := getenv("DEFAULT_CONTENT_TYPE", "text/plain; charset=utf-8")
	if _, _, err = mime.ParseMediaType(contentType); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CONTENT_TYPE: %w", err)
	}

	maxBodySize := parseMaxBodySize()

	forwardedFor := getenvBool("FORWARDED_FOR", true)

	requestIDLength, err := parseRequestIDLength()
	if err != nil {
		return nil, err
	}

	return &config{
		mode:               mode,
		protocolVersion:    protocolVersion,
		inferHost:          inferHost,
		serverName:         serverName,
		defaultContentType: contentType,
		maxBodySize:        maxBodySize,
		forwardedFor:       forwardedFor,
		requestIDLength:    requestIDLength,
	}, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func parseMode() (types.OutputMode, error) {
	switch strings.ToLower(getenv("MODE", "cgi")) {
	case "cgi":
		return types.OutputModeCGI, nil
	case "http":
		return types.OutputModeHTTP, nil
	default:
		return 0, fmt.Errorf("invalid MODE value")
	}
}

func parseProtocolVersion() (string, error) {
	raw := getenv("PROTOCOL_VERSION", "1.1")
	switch raw {
	case "1.0", "1.1", "2", "2.0", "3":
		return raw, nil
	default:
		return "", fmt.Errorf("invalid PROTOCOL_VERSION %q", raw)
	}
}

func parseMaxBodySize() int64 {
	raw := getenv("MAX_BODY_SIZE", strconv.Itoa(defaultMaxBodySize))
	size, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || size < minMaxBodySize || size > maxMaxBodySize {
		log.Printf("Invalid MAX_BODY_SIZE, falling back to %d", defaultMaxBodySize)
		return defaultMaxBodySize
	}
	return size
}

func parseRequestIDLength() (int, error) {
	raw := getenv("REQUEST_ID_LENGTH", "16")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 64 {
		return 0, fmt.Errorf("invalid REQUEST_ID_LENGTH %q", raw)
	}
	return n, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}
