// Package writers turns rendered site drawings into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (SVG, PNG, JSON/JSONL, text).
//   - core/ stays layout-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
