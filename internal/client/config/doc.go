// Package config loads runtime configuration for the task tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-f string   session database file
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3001",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_db_path": "tasktracker.db"
//	}
package config
