// Package config loads runtime configuration for the taskboard CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or $TASKBOARD_CONFIG.
//  3. Command-line flags -a, -i, -l and -n.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "local_db_path": "/home/me/.config/taskboard/taskboard.db",
//	  "cache_size": 128
//	}
package config
