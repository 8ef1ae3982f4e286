// Package datagate implements the typed data-interchange and
// mutation-protocol core of a dataset gateway:
//
//   - A closed set of semantic column types with one client-JSON, one
//     backend-wire, and one flat-text representation each (codec/)
//   - Fail-fast translation of streamed client row edits into typed row
//     operations (translate/)
//   - A streaming encoder for the backend's positionally parsed mutation
//     script, including its null-sentinel row-run protocol (script/)
//   - Streaming row-JSON, columnar-JSON, and CSV exporters (export/)
//
// Design policy:
//   - Keep the shared data and error models in the root package; put the
//     streaming value reader under internal/.
//   - Everything is pull-based: translators, script writers, and exporters
//     hold at most one row's encoded form in memory, and an abandoned
//     consumer simply stops pulling.
//
// Typical write path:
//
//	tr := translate.NewJSON(schema, body, translate.Options{MaxDatumBytes: 1 << 20})
//	w, _ := script.NewWriter(dst, actor, script.Command{Kind: script.KindNormal},
//		script.WithDefaultRowOptions(script.RowOptions{Update: script.UpdateMerge}))
//	if err := translate.Run(tr, w.WriteRow); err != nil { ... }
//	if err := w.Close(); err != nil { ... }
package datagate
