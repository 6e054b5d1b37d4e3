/*
Package passlock seals data with a key derived from a user-provided passphrase.
Lockstitch uses it to protect key material files at rest, since the obfuscation itself offers no confidentiality once the key material is known.

# How it works:

A KeyGenerator derives an AES-256 key from the passphrase and a random salt with scrypt.
Scrypt is memory and CPU hard, so it's impractical to brute force the passphrase, provided that sufficient tuning values are given to the KeyGenerator.

KeyGenerator.Seal writes the generator settings and the salt in front of the AES-GCM sealed payload, and authenticates them along with it.
Open reads the settings back, derives the same key from the passphrase, and decrypts the payload.

# General guidelines:
  - Key material files are small and opened often, so SetShortDelayIterations is the default.
  - Only use SetIterations, SetCPUCost, or SetRelativeBlockSize if you know what you're doing.
*/
package passlock
