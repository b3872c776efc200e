// Package explain annotates scored routes with short natural-language
// explanations from an LLM. One request covers all routes; on any failure
// the routes are annotated with fixed fallback text instead of erroring.
package explain
