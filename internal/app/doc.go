// Package app provides the application service layer.
//
// Validates requests, runs the analyzer and, for URL analysis, the text
// extractor. Sits between HTTP handlers and the analysis core, and turns
// domain failures into typed errors the transport can render.
package app
