/*
Package container packs a transformed payload and its metadata into the lockstitch container layout, and parses it back.

# Layout

All fixed-size fields sit at the end of the container, so parsing starts at the tail and works backward.

	[header (HeadSize)] [body] [body chunk length (4, BE, non-media only)] [HeadSize (2, BE)] [position marker] [extension (16)] [password (32)]

The header is an untouched copy of the first HeadSize payload bytes, which keeps file signatures readable.
The body always covers the whole payload.
For media extensions the body is the payload screened with the key window.
Otherwise the first ChunkSize bytes are multiplied by the key window and stored as hex text, followed by the rest of the payload screened with the key window.

The position marker, extension and password fields are screened with the marker.Prefix pattern.
Extension and password are space padded or truncated to their field size, and trailing spaces are dropped when they are read back.

Note that the password is stored in the container, only obscured.
It prevents accidental decoding with the wrong password, it does not protect the content.
*/
package container
