package env

import (
	"errors"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultIssuePattern matches tracker issue keys like ABC-123.
const DefaultIssuePattern = `[A-Z]+-\d+`

// Config holds every process-wide setting. It is built once by Load and
// never mutated afterwards; components receive it by pointer.
type Config struct {
	YouTrackURL      string
	YouTrackUsername string
	YouTrackPassword string
	YouTrackToken    string

	StashHost    string
	IssuePattern *regexp.Regexp
	DefaultUser  string

	MongoURI  string
	JWTSecret []byte
	Prefork   bool

	Version string
}

// Load reads the .env file under envRoot (repo root when empty), overlays
// the process environment, and validates the result.
func Load(envRoot string, appVersion string) (*Config, error) {
	loadEnv(envRoot)

	cfg := &Config{
		YouTrackURL:      strings.TrimRight(strings.TrimSpace(os.Getenv("YOUTRACK_URL")), "/"),
		YouTrackUsername: strings.TrimSpace(os.Getenv("YOUTRACK_USERNAME")),
		YouTrackPassword: os.Getenv("YOUTRACK_PASSWORD"),
		YouTrackToken:    strings.TrimSpace(os.Getenv("YOUTRACK_TOKEN")),
		StashHost:        strings.TrimRight(strings.TrimSpace(os.Getenv("STASH_HOST")), "/"),
		DefaultUser:      strings.TrimSpace(os.Getenv("DEFAULT_USER")),
		MongoURI:         strings.TrimSpace(os.Getenv("MONGO_URI")),
		JWTSecret:        []byte(os.Getenv("JWT_SECRET")),
		Version:          loadVersion(appVersion),
	}

	cfg.Prefork, _ = strconv.ParseBool(os.Getenv("PREFORK"))

	if cfg.YouTrackURL == "" {
		return nil, errors.New("YOUTRACK_URL must be set")
	}
	if cfg.StashHost == "" {
		return nil, errors.New("STASH_HOST must be set")
	}
	if cfg.DefaultUser == "" {
		return nil, errors.New("DEFAULT_USER must be set")
	}

	expr := strings.TrimSpace(os.Getenv("ISSUE_REGEX"))
	if expr == "" {
		expr = DefaultIssuePattern
	}

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.New("ISSUE_REGEX is not a valid regular expression: " + err.Error())
	}
	cfg.IssuePattern = pattern

	return cfg, nil
}

func loadEnv(envRoot string) {
	if envRoot == "" {
		envRoot = repoRoot()
	}

	path := path.Join(envRoot, ".env")
	if err := godotenv.Overload(path); err != nil {
		// Containerized deployments set variables directly.
		log.Printf("no env file at %s, using process environment", path)
	}
}

func loadVersion(appVersion string) string {
	if appVersion != "" {
		return appVersion
	}

	data, err := os.ReadFile(filepath.Join(repoRoot(), "VERSION"))
	if err != nil {
		return "unknown"
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "unknown"
	}

	return trimmed
}

func repoRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}
