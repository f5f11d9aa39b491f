// Package config loads folio's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml
//  3. If the file doesn't exist, return Default()
//  4. Fields that are missing or blank keep their defaults
//
// # TOML Format
//
//	api_url = "https://gutendex.com/books/"
//	user_agent = "folio/0.1"
//	request_timeout = "15s"
//	search_debounce = "400ms"
//	cache_ttl = "5m"        # "0s" disables the listing cache
//	cache_size = 64
//	rate_limit = 2.0        # requests per second, 0 disables throttling
//	rate_burst = 2
//	languages = ["any", "en", "pt", "es", "fr", "de"]
//	log_file = "~/.local/state/folio/folio.log"
//	log_level = "info"
//	metrics_addr = ""       # e.g. "127.0.0.1:9464" to expose /metrics
//
// Durations use time.ParseDuration syntax. Language codes are validated as
// ISO 639 base languages; "any" (or "") is always offered first.
//
// # Error Handling
//
// Missing config files are not an error. Unreadable files, TOML syntax
// errors and invalid values are returned wrapped with "parse config" or
// "open config" context.
package config
