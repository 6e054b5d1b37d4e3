/*
Package xor provides the repeating-key XOR screen used by lockstitch.

Note that this is NOT encryption, since it is easily reversible.
It's used in three places:
  - Media payloads (video containers like mp4 and mov) are screened whole with the key window, since inflating them through the multiply transform isn't worth it.
  - The part of a payload beyond the multiply chunk is screened with the key window.
  - Fixed-size metadata fields (position marker, extension, password) are screened with a constant prefix pattern.

# How it works:

Every byte is XORed with the next byte of the key.
When the last key byte is used, the first will be used again, operating like a ring buffer.
Applying the same key a second time restores the original bytes.

Apply works in place on a buffer, while Reader and Writer screen bytes as they are streamed.
*/
package xor
