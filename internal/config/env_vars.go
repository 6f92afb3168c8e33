package config

import (
	"os"
)

// Environment variables read for flag defaults. The names match the ones the
// deployment already uses.
const (
	envVar            = "ENV"
	appNameVar        = "APP_NAME"
	portEnvVar        = "PORT"
	logLevelVar       = "LOG_LEVEL"
	databaseURLVar    = "DATABASE_URL"
	accessSecretVar   = "ACCESS_TOKEN_SECRET"
	refreshSecretVar  = "REFRESH_TOKEN_SECRET"
	accessLifeVar     = "ACCESS_TOKEN_LIFE"
	refreshLifeVar    = "REFRESH_TOKEN_LIFE"
	tokenIssuerVar    = "TOKEN_ISSUER"
	corsOriginVar     = "CORS_ORIGIN"
	googleClientVar   = "GOOGLE_CLIENT_ID"
	googleSecretVar   = "GOOGLE_CLIENT_SECRET"
	googleRedirectVar = "GOOGLE_REDIRECT_URL"
	s3BucketVar       = "S3_BUCKET"
	s3RegionVar       = "S3_REGION"
	s3EndpointVar     = "S3_ENDPOINT"
	s3AccessKeyVar    = "S3_ACCESS_KEY"
	s3SecretKeyVar    = "S3_SECRET_KEY"
	s3PublicURLVar    = "S3_PUBLIC_BASE_URL"
)

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
