// Package llm defines the text-completion capability used to talk to hosted
// language models.
//
// Backends implement LLMProvider (see the providers subpackage). Every
// backend error crosses the package boundary through TranslateError, so
// callers only ever see BackendUnreachable errors with a retryability hint.
package llm
