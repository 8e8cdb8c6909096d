// Package domain contains the core data types for the catering API:
// entities, sentinel errors, the pagination cursor codec and page types.
// This package has zero external dependencies and is imported by every other
// internal package (patch, repo, service, handler).
package domain
