// Package mcp provides an MCP (Model Context Protocol) server adapter for ansa.
// It enables AI assistants to answer questions over the local document corpus.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
