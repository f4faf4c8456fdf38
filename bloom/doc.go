package bloom

/*

# Fixed capacity Bloom filters

This package provides a classic Bloom filter sized from a target false
positive rate and an expected element count.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element is not present.
- If the filter says "maybe present", then the element may or may not be present
  (false positives are possible).

Elements can not be removed and the capacity is fixed at construction. The
digest used to derive bit positions is a hash source only, filters are NOT
cryptographic commitments.

## Sizing

For a target rate p and expected count n:

	k = ceil(-log2(p))    hash values per element
	c = k / ln(2)         bits per element
	m = ceil(n * c)       bits in the filter

So New(0.01, 1000) gives k=7 and m=10099.

## Hash derivation

Each element needs k values. A digest (MD5 by default) is computed over a one
byte salt followed by the element bytes, and the digest is cut into 4 byte
big-endian chunks, each one a signed 32 bit value. A 16 byte digest gives 4
values per round, and the salt is incremented for each further round:

	round 0: MD5( 0x00 || elem ) -> h0 h1 h2 h3
	round 1: MD5( 0x01 || elem ) -> h4 h5 h6 h7
	...

Value h selects bit |h mod m|. Every call uses its own digest state, so there
is no shared hashing state to lock.

Strings are hashed as their UTF-8 bytes. Changing the digest or the element
encoding changes every bit position, which is why the persisted formats
record the digest.

## Persisted formats

Filters encode to a 32 byte versioned header followed by the bitset with
bit 0 as the least-significant bit of byte 0 (MarshalBinary, WriteTo), or to
an integer keyed CBOR record with the same fields (MarshalCBOR).

## Concurrency

A Filter is not safe for concurrent use. Locked wraps a filter with a
read/write lock.

*/
