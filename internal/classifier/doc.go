// Package classifier is the HTTP client for the remote moderation
// model. It speaks the OpenRouter-flavored chat-completions wire
// format: one POST per batch with a single user message, the first
// choice's message content returned as raw text for the normalizer.
//
// Rate limits and server errors are retried with bounded exponential
// backoff; authentication and other client errors fail immediately.
package classifier
