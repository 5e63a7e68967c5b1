/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p             PORT           Server port (default: 8000)
	-d             DATABASE_URL   Database connection string (required)
	-t             DATABASE_TYPE  "sqlite" or "postgres" (default: sqlite)
	-e             ENV            "development" or "production"
	-client-origin CLIENT_ORIGIN  Allowed CORS origin
	-jwt-secret    JWT_SECRET     Token signing secret (required)
	-jwt-expiry    JWT_EXPIRY     Token lifetime (default: 12h)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or JWT_SECRET is missing,
or if DATABASE_TYPE names an unsupported backend.
*/
package cliparse
