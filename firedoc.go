// Package firedoc turns a documentation website into a single consolidated
// markdown file by driving the Firecrawl crawl and batch extraction API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., firecrawl/, sqlite/, trafilatura/).
package firedoc
