// Package config provides configuration structures and utilities for the
// landing-page analyzer. It defines the main configuration options for
// analysis runs, provider and model selection, and report generation
// preferences.
package config
