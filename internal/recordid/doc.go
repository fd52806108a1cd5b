/*
Package recordid derives stable identifiers for frames and exception contexts.

Two formats exist:

	<filename>#<lineno>   for records that carry both a filename and a line number
	h:<16 hex digits>     xxHash64 of the record's canonical JSON otherwise

Canonical JSON is the encoding/json rendering of the record's present fields,
which sorts object keys at every level. xxHash64 has no per-process seed, so
the same input always yields the same identifier across runs and machines.
*/
package recordid
