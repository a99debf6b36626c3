package config

import (
	"flag"
	"os"
	"time"

	"github.com/maaz2022/ourtracker/internal/flagx"
)

var knownFlags = []string{
	"-a", "-grpc", "-d", "-s", "-t", "-r", "-i",
	"-u", "-p", "-b", "-region", "-e", "-m", "-topic",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string       HTTP bind address
//	-grpc string    gRPC bind address
//	-d string       PostgreSQL DSN
//	-s string       access token HMAC secret
//	-t int          access token validity, minutes
//	-r int          refresh token validity, minutes
//	-i string       image storage: inline | s3
//	-u, -p string   S3 user / password
//	-b string       S3 bucket
//	-region string  S3 region
//	-e string       S3 base endpoint
//	-m string       MQTT broker URL, empty disables invalidation events
//	-topic string   MQTT topic prefix
//
// os.Args is filtered to the flags above first, so the JSON config flags
// parsed elsewhere do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.ImageStorage, "i", config.ImageStorage, "image storage (inline|s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.MQTTBroker, "m", config.MQTTBroker, "MQTT broker URL")
	fs.StringVar(&config.MQTTTopic, "topic", config.MQTTTopic, "MQTT topic prefix")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
}
