// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in priority order (the
// first source to provide a value wins):
//  1. Command-line flags, parsed by the command layer via [BindFlags]
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig].
package config
