// Package core provides eligibility lookups over a published spreadsheet.
//
// The package holds all domain logic independent of any transport. It is
// used by the web server and the CLI without modification.
//
// # Architecture
//
//   - Schema: the fixed mapping from spreadsheet columns to an identifier and
//     a set of named boolean flags. Schemas are registered at init time with
//     [Register] (see package schemas) or loaded from a YAML file.
//   - Loader: fetches the export, parses it with package sheet, coerces every
//     record with the schema and caches the resulting [Dataset].
//   - Service: normalizes a query and scans the dataset.
//   - Observer: receives load-state and lookup notifications for rendering.
//
// # Loading
//
// Loads are lazy and de-duplicated:
//
//  1. The first [Service.Find] with a non-blank query calls [Loader.EnsureLoaded]
//  2. Concurrent callers join the same in-flight load and share its result
//  3. The dataset is swapped in atomically once fully coerced
//  4. Later lookups reuse the cached dataset without network access
//
// [Loader.Reload] and [Loader.StartRefreshScheduler] replace the dataset on
// demand or on a timer; a failed reload keeps the previous snapshot.
//
// # Coercion
//
// [NormalizeIdentifier] trims, lowercases and NFC-composes identifiers.
// [ToBool] accepts true/false words, digits, and circle or cross glyphs,
// defaulting to false.
//
// # Error Handling
//
// Blank queries yield [ErrEmptyIdentifier]. Load failures yield a
// [*LoadError] wrapping the transport or decoding error. A query with no
// match is not an error. [MapError] turns any of these into a coded,
// user-facing [UserMessage].
package core
