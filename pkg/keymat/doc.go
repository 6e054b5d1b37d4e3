/*
Package keymat holds the secret byte blob that every lockstitch key window is cut from.

Material is loaded once, usually at process start, and is read-only afterward.
It's safe to share a single *Material between any number of goroutines.

# Loading

Load tries each candidate path in order and uses the first file that is readable and not empty.
If none are usable, the blob embedded in this package is used instead.
A sealed candidate is opened with a passphrase rather than skipped, so sealed material is never mistaken for raw key bytes.
Both sides of a round trip must use the same material, since the width of the position marker and every key window depend on it.

# Sealed material

Key material files may be sealed with a passphrase (see Seal and Open), which protects them at rest with passlock.
A sealed file never falls back to the default blob: a wrong passphrase is an error.
*/
package keymat
