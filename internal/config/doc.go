// Package config provides configuration for rolereport.
package config
