package embedding

import "errors"

// ErrUnavailable means no embedding provider is configured. It is not a
// failure: the engine treats it as a signal to run the TF-IDF path.
var ErrUnavailable = errors.New("embedding unavailable")

// ErrQueryFailed means an embedding call failed after retries.
// DeepInfraEmbedder wraps every failed Embed call with it, whether the
// text was the query or a candidate document. When the query embedding
// fails, the engine falls back to TF-IDF for the whole call.
var ErrQueryFailed = errors.New("embedding query failed")

// ErrDocumentFailed means a single embedding call failed; FakeEmbedder
// returns it for its FailOn text, query or document. A candidate whose
// embedding fails keeps its heuristic and keyword adjustments; only the
// embedding contribution is lost.
var ErrDocumentFailed = errors.New("embedding document failed")
