// Package config manages application settings for pictree.
//
// Settings are stored as a JSON file, by default ~/.pictree/config.json:
//
//	settings, err := config.Load(config.DefaultPath())
//	settings.ServerURL = "https://store.example.com"
//	err = settings.Save(config.DefaultPath())
//
// A missing config file is not an error; Load then returns
// DefaultSettings, which points the client at a locally running
// `pictree serve` backend.
package config
