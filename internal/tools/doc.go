// Package tools exposes the gathering engine as MCP tools. Each tool is
// a thin adapter: it parses decimal amounts into cents, calls one
// GatheringService operation, and renders the result back as decimal
// strings. Serialization, error envelopes, and transport concerns belong
// to the MCP SDK.
package tools
