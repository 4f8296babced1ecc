/*
Package idata implements an ordered hierarchical key-value document model
accessed through positional cursors, together with several interchangeable
backing stores.

We implement:

1. Documents, ordered collections of key-value pairs where keys may repeat.
A document has no get-by-key primitive of its own; all access goes through
a cursor.

2. Cursors, stateful bidirectional handles that seek by position or by key.
Every backing store satisfies the same cursor contract, so algorithms written
against it work with any document.

3. Backing stores: a slice of elements (ElementList), a case-insensitive
variant that preserves original key casing, and a wrapper over a native
insertion-ordered unique-key map (MapData).

4. Wrapper documents: read-only views, immutable deep snapshots, and
copy-on-write envelopes that clone their delegate lazily on first mutation
while outstanding cursors rebind by replaying a recorded command log.

5. Helper algorithms (get/put/drop, append, sort, sanitize) and
fully-qualified path addressing (“a/b[0]/c”) over arbitrary documents.

# Technical Details

**Cursor positions.** A list-backed cursor models a gap position in [0, n]
plus the index of the current element, the same state a Java-style list
iterator carries. Moving past either end returns false and never panics,
so navigation loops terminate without error handling.

**Boundary policy.** Navigation misses, deletes on unpositioned cursors and
mutations of read-only documents all report false (or nil) and are otherwise
silent. Only genuinely unsupported operations (legacy tree/hash/index cursor
kinds) surface an error, ErrNotImplemented.

**Copy-on-write.** A copy-on-write document shares its delegate until the
first mutating cursor call, or the first read of a nested document value.
The top level is then cloned exactly once under a mutex; nested documents
are re-wrapped copy-on-write rather than deep-cloned. Cursors record their
position-changing calls and replay them against the clone to restore their
logical position.

Serialization of documents to and from external formats lives in the codec
subpackage.
*/
package idata
