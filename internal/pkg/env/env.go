package env

import (
	"os"

	"github.com/joho/godotenv"
)

// Env holds the key/value pairs read from the .env file. Process
// environment variables take over when a key is absent here, so container
// deployments work without any file at all.
var Env map[string]string

// GetEnv resolves key against the .env map first, then the process
// environment, then the given default.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env it finds. The relative candidates cover
// running from the repo root and from inside cmd/localpages, cmd/migrate or
// cmd/seed.
func SetupEnvFile() {
	candidates := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	var err error
	for _, candidate := range candidates {
		Env, err = godotenv.Read(candidate)
		if err == nil {
			return
		}
	}

	panic("no .env file found; create one next to go.mod or export the variables")
}

// IsDev reports whether the directory runs in development mode. Controls
// cookie security and a few relaxed defaults; production is the fallback.
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
