package config

import (
	"github.com/spf13/pflag"
)

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"env":                  "env",
	"app-name":             "app_name",
	"port":                 "port",
	"log-level":            "log_level",
	"database-url":         "database_url",
	"access-token-secret":  "tokens.access_secret",
	"refresh-token-secret": "tokens.refresh_secret",
	"access-token-life":    "tokens.access_life",
	"refresh-token-life":   "tokens.refresh_life",
	"token-issuer":         "tokens.issuer",
	"cors-origin":          "cors.allowed_origins",
	"google-client-id":     "google.client_id",
	"google-client-secret": "google.client_secret",
	"google-redirect-url":  "google.redirect_url",
	"s3-bucket":            "media.bucket",
	"s3-region":            "media.region",
	"s3-endpoint":          "media.endpoint",
	"s3-access-key":        "media.access_key",
	"s3-secret-key":        "media.secret_key",
	"s3-public-base-url":   "media.public_base_url",
}

// RegisterFlags adds every configuration flag to fs. Defaults come from the
// environment so a bare `surfclub serve` behaves like the env-only deployment.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("env", GetEnv(envVar, "DEV"), "runtime environment (DEV enables console logging)")
	fs.String("app-name", GetEnv(appNameVar, "Surf Club"), "application name shown in the banner")
	fs.String("port", GetEnv(portEnvVar, "5000"), "HTTP listen port")
	fs.String("log-level", GetEnv(logLevelVar, "info"), "log level (debug, info, warn, error)")
	fs.String("database-url", GetEnv(databaseURLVar, ""), "PostgreSQL URL; empty uses the in-memory store")

	fs.String("access-token-secret", GetEnv(accessSecretVar, ""), "HMAC secret for access tokens")
	fs.String("refresh-token-secret", GetEnv(refreshSecretVar, ""), "HMAC secret for refresh tokens")
	fs.String("access-token-life", GetEnv(accessLifeVar, ""), "access token lifetime (15m, 900, 1d)")
	fs.String("refresh-token-life", GetEnv(refreshLifeVar, ""), "refresh token lifetime (7d)")
	fs.String("token-issuer", GetEnv(tokenIssuerVar, "surf-club"), "token issuer claim")

	fs.StringSlice("cors-origin", []string{GetEnv(corsOriginVar, "*")}, "allowed CORS origins")

	fs.String("google-client-id", GetEnv(googleClientVar, ""), "Google OAuth client id; empty disables Google login")
	fs.String("google-client-secret", GetEnv(googleSecretVar, ""), "Google OAuth client secret")
	fs.String("google-redirect-url", GetEnv(googleRedirectVar, "postmessage"), "Google OAuth redirect URL for code exchange")

	fs.String("s3-bucket", GetEnv(s3BucketVar, ""), "S3 bucket for uploads; empty disables presigning")
	fs.String("s3-region", GetEnv(s3RegionVar, "us-east-1"), "S3 region")
	fs.String("s3-endpoint", GetEnv(s3EndpointVar, ""), "custom S3 endpoint (MinIO, LocalStack)")
	fs.String("s3-access-key", GetEnv(s3AccessKeyVar, ""), "S3 access key; empty uses the default credential chain")
	fs.String("s3-secret-key", GetEnv(s3SecretKeyVar, ""), "S3 secret key")
	fs.String("s3-public-base-url", GetEnv(s3PublicURLVar, ""), "public base URL of uploaded objects")
}
