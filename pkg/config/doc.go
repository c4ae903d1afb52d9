// Package config loads env-tagged configuration structs with per-type
// caching, so the same Config type loaded from different packages always
// yields the same values.
//
//	var dbCfg pg.Config
//	config.MustLoad(&dbCfg)
//
//	var domCfg domain.Config
//	config.MustLoad(&domCfg)
//
// A .env file in the working directory is applied once before the first
// parse, for local development.
package config
