// Package config provides configuration management for the waiver service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: student database connection details (SQLite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings for the waiver pool
//   - Log: Logging level and format
//   - Waiver: pipeline policies (roster column, header fallback, filename
//     enforcement, output overwrite)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
