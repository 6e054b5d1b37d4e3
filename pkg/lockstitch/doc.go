/*
Package lockstitch turns strings and files into an obfuscated form and back.

Note that this is NOT encryption.
Every key is a window into one fixed blob of key material, so anybody holding the material can recover content by trying each offset.
Use it to keep content from casual inspection, never to protect secrets.

# How it works:

Each operation picks a random offset into the key material and records it in a screened position marker.
The key window at that offset is used as a big integer multiplier: the content (or the first 40000 bytes of a payload) is multiplied by it and stored as hex text.
Payload bytes past that chunk, and whole media payloads, are XOR screened with the same window instead.
Decoding reads the marker, cuts the same window, divides and unscreens.

Text mode produces the marker followed by the hex text, and always uses a 10 byte key window.
Payload mode produces a container (see package container) carrying the extension, a password and an optional plain copy of the payload header.

# Errors

Failures are reported with the sentinel errors in this package, and KindOf classifies any returned error.
*/
package lockstitch
