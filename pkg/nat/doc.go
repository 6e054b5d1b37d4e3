/*
Package nat implements the multiply/divide transform at the core of lockstitch.

A payload and a key window are both treated as unsigned big-endian integers.
Encoding multiplies them and renders the product as lowercase hex text, which doubles the stored size again.
Decoding parses the hex text, divides it by the same key and returns the quotient.

# Exactness

The stored value is always an exact multiple of the key, so Decode(Encode(p, k), k) == p for every payload and every non-zero key.
The width of the hex text fixes the width of the original payload, which is how leading zero bytes (and empty payloads) survive the round trip.
Anything that breaks exactness (a different key, a tampered body, a truncated buffer) is reported as an error instead of yielding garbage.

# Cost

Multiplication and division are both schoolbook algorithms over 32-bit limbs, so the cost is proportional to the product of the operand lengths.
Callers are expected to bound both operands.
*/
package nat
