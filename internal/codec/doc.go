// Package codec converts keys and encrypted messages to and from
// transportable strings. Everything here is pure and synchronous.
//
// Keys travel as standard base64 (EncodeKey) or as an armored PEM block
// carrying the directory key id (ArmorPublicKey). Messages travel either as
// JSON or as the compact form produced by EncodeMessage:
//
//	v1.<nonce>.<ciphertext>[.<sender key>]
//
// with every part base64url encoded without padding.
package codec
