// Package config provides configuration loading, merging, and validation
// facilities for passgate.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults ([Default])
//  2. JSON or YAML config file
//  3. Environment variables
//  4. Command-line flags ([RegisterFlags])
//
// The main entry point is [GetStructuredConfig]; [StructuredConfig.AuthConfig]
// and [StructuredConfig.KDFParams] derive the policy views used at runtime.
package config
