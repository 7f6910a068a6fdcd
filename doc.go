// Package fiscus drives large-language-model calls that extract structured
// data from financial document pages: key-value parameters and transaction
// tables, one artifact file per page.
//
// It provides the building blocks the extraction pipeline is assembled from:
// an LLM provider abstraction, retry middleware, and ask-then-parse tasks
// whose replies must validate as JSON or CSV before they are accepted.
//
// # Quick Start
//
// Create a provider and run the page workflow:
//
//	provider := fiscus.WithRetry(openaicompat.NewProvider(apiKey, model, baseURL))
//
//	err := document.Init("statement.pdf", "work/stmt-2024-01")
//	err = extraction.ExtractPages(ctx, "work/stmt-2024-01", extraction.Options{
//		Provider: provider,
//	})
//
// Every artifact write runs inside a fileguard scope: a failed extraction
// leaves the destination file exactly as it was, so re-running the workflow
// retries only the pages whose artifacts are missing.
//
// # Core Interfaces
//
//   - [Provider] — LLM backend (chat completion)
//   - [JSONTask], [CSVTask] — prompt-and-parse exchanges with retry on
//     malformed replies
//   - [WithRetry] — transparent retry of transient transport errors
//   - [WithRateLimit] — request/token budget enforcement per minute
//
// # Packages
//
// fileguard implements the transactional file guard. document models document
// metadata and the working-directory layout; document/pdf reads page text and
// rows. extraction runs the per-page workflow. provider/openaicompat talks to
// any OpenAI-compatible chat completions API. observer adds optional
// OpenTelemetry instrumentation around provider calls.
package fiscus
